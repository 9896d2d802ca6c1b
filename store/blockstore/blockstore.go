// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blockstore implements the append-only block file set: numbered
// files holding raw serialized blocks, addressed by (file id, byte offset),
// per spec.md §4.2.
package blockstore

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/vantachain/vantad/wire"
)

// DefaultMaxFileSize is the soft cap a file is allowed to reach before the
// store rolls over to the next file id.
const DefaultMaxFileSize = 128 * 1024 * 1024

// headerLen is the magic + length prefix written ahead of every block.
const headerLen = 4 + 4

// safetyMarginBytes is held back on top of the pending write's size before
// Append will proceed, so the store never races the filesystem down to
// exactly zero free bytes.
const safetyMarginBytes = 16 * 1024 * 1024

// Store is the on-disk append-only block file set. It tracks one active
// file for appends and keeps a small cache of read-only handles for
// concurrent readers.
type Store struct {
	mu sync.Mutex

	dir         string
	magic       wire.ChainMagic
	maxFileSize int64

	curFileID int32
	curFile   *os.File
	curSize   int64

	readHandles map[int32]*os.File
}

// New opens (creating dir if necessary) a block file store rooted at dir,
// resuming appends at the highest-numbered existing file, or starting fresh
// at file 0001 if dir is empty.
func New(dir string, magic wire.ChainMagic) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("blockstore: mkdir %s: %w", dir, err)
	}

	s := &Store{
		dir:         dir,
		magic:       magic,
		maxFileSize: DefaultMaxFileSize,
		readHandles: make(map[int32]*os.File),
	}

	lastID, size, err := latestFile(dir)
	if err != nil {
		return nil, err
	}
	if lastID == 0 {
		lastID = 1
	}
	if err := s.openForAppend(lastID); err != nil {
		return nil, err
	}
	s.curSize = size
	return s, nil
}

func latestFile(dir string) (id int32, size int64, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, 0, fmt.Errorf("blockstore: readdir %s: %w", dir, err)
	}
	for _, e := range entries {
		var n int
		if _, scanErr := fmt.Sscanf(e.Name(), "blk%04d.dat", &n); scanErr != nil {
			continue
		}
		if int32(n) > id {
			id = int32(n)
		}
	}
	if id == 0 {
		return 0, 0, nil
	}
	info, err := os.Stat(filePath(dir, id))
	if err != nil {
		return 0, 0, fmt.Errorf("blockstore: stat blk%04d.dat: %w", id, err)
	}
	return id, info.Size(), nil
}

func filePath(dir string, id int32) string {
	return filepath.Join(dir, fmt.Sprintf("blk%04d.dat", id))
}

func (s *Store) openForAppend(id int32) error {
	f, err := os.OpenFile(filePath(s.dir, id), os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("blockstore: open blk%04d.dat: %w", id, err)
	}
	s.curFileID = id
	s.curFile = f
	return nil
}

// SetMaxFileSize overrides the default 128 MiB soft rollover cap. Intended
// for tests that want to exercise rollover without writing 128 MiB.
func (s *Store) SetMaxFileSize(n int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxFileSize = n
}

// Append writes block as a length-prefixed record to the current file,
// rolling to the next file id first if the write would exceed the
// configured soft cap. It returns the (file id, byte offset) the record's
// payload begins at, which read() later addresses it by.
func (s *Store) Append(block *wire.MsgBlock) (fileID int32, offset int64, err error) {
	payload, err := block.Bytes()
	if err != nil {
		return 0, 0, fmt.Errorf("blockstore: serialize block: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkFreeSpace(int64(len(payload) + headerLen)); err != nil {
		return 0, 0, err
	}

	if s.curSize > 0 && s.curSize+int64(len(payload)+headerLen) > s.maxFileSize {
		if err := s.rollover(); err != nil {
			return 0, 0, err
		}
	}

	var header [headerLen]byte
	binary.LittleEndian.PutUint32(header[0:4], uint32(s.magic))
	binary.LittleEndian.PutUint32(header[4:8], uint32(len(payload)))

	if _, err := s.curFile.Write(header[:]); err != nil {
		return 0, 0, fmt.Errorf("blockstore: write header: %w", err)
	}
	off := s.curSize + headerLen
	if _, err := s.curFile.Write(payload); err != nil {
		return 0, 0, fmt.Errorf("blockstore: write payload: %w", err)
	}
	if err := s.curFile.Sync(); err != nil {
		return 0, 0, fmt.Errorf("blockstore: fsync: %w", err)
	}

	s.curSize += int64(headerLen + len(payload))
	return s.curFileID, off, nil
}

func (s *Store) rollover() error {
	if err := s.curFile.Close(); err != nil {
		return fmt.Errorf("blockstore: close blk%04d.dat: %w", s.curFileID, err)
	}
	if err := s.openForAppend(s.curFileID + 1); err != nil {
		return err
	}
	s.curSize = 0
	return nil
}

func (s *Store) checkFreeSpace(required int64) error {
	var st unix.Statfs_t
	if err := unix.Statfs(s.dir, &st); err != nil {
		// Can't determine free space; don't block writes on an
		// unsupported platform/filesystem.
		return nil
	}
	free := int64(st.Bavail) * int64(st.Bsize)
	if free < required+safetyMarginBytes {
		return ErrDiskFull
	}
	return nil
}

// Read seeks to (fileID, offset) and decodes the block there, in full mode
// if withTx is true or header-only mode otherwise.
func (s *Store) Read(fileID int32, offset int64, withTx bool) (*wire.MsgBlock, error) {
	f, err := s.readHandle(fileID)
	if err != nil {
		return nil, err
	}

	var hdr [headerLen]byte
	if _, err := f.ReadAt(hdr[:], offset-headerLen); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	if magic := wire.ChainMagic(binary.LittleEndian.Uint32(hdr[0:4])); magic != s.magic {
		return nil, fmt.Errorf("%w: magic %v, want %v", ErrCorrupt, magic, s.magic)
	}
	length := binary.LittleEndian.Uint32(hdr[4:8])

	payload := make([]byte, length)
	if _, err := f.ReadAt(payload, offset); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	block := &wire.MsgBlock{}
	if withTx {
		err = block.FromBytes(payload)
	} else {
		err = block.DeserializeHeaderOnly(bytes.NewReader(payload))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return block, nil
}

func (s *Store) readHandle(fileID int32) (*os.File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fileID == s.curFileID {
		return s.curFile, nil
	}
	if f, ok := s.readHandles[fileID]; ok {
		return f, nil
	}
	f, err := os.Open(filePath(s.dir, fileID))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	s.readHandles[fileID] = f
	return f, nil
}

// Close closes the active append file and every cached read handle.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var firstErr error
	if err := s.curFile.Close(); err != nil {
		firstErr = err
	}
	for id, f := range s.readHandles {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(s.readHandles, id)
	}
	return firstErr
}
