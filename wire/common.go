// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"
)

// littleEndian is used throughout the codec: every integer on the wire and
// on disk is little-endian, per the codec requirement in the spec.
var littleEndian = binary.LittleEndian

// maxVarIntLen is the maximum number of bytes a variable-length integer can
// occupy, matching the base-128 varint used for all length prefixes.
const maxVarIntLen = 9

// binaryFreeList houses a free list of byte slices used to efficiently
// read and write integer values to and from io.Reader/io.Writer. It is
// used as a scratch buffer pool so repeated header reads/writes don't
// allocate, mirroring the teacher's binarySerializer pool referenced from
// wire/blockheader.go.
type binaryFreeList chan []byte

// Borrow returns a byte slice from the free list with a length of 8. A new
// buffer is allocated if there are not any available on the free list.
func (l binaryFreeList) Borrow() []byte {
	var buf []byte
	select {
	case buf = <-l:
	default:
		buf = make([]byte, 8)
	}
	return buf[:8]
}

// Return puts the provided byte slice back on the free list. The buffer MUST
// have been obtained via the Borrow function and therefore have a cap of 8.
func (l binaryFreeList) Return(buf []byte) {
	select {
	case l <- buf:
	default:
		// Let it be garbage collected if the free list is full.
	}
}

// binarySerializer is a free list of buffers shared by every reader/writer
// helper in this package so concurrent (de)serialization doesn't thrash the
// allocator.
var binarySerializer binaryFreeList = make(chan []byte, 32)

// writeVarInt serializes val to w using a variable-length little-endian
// base-128 encoding, used to length-prefix every variable-sized array in
// the codec per the spec's "length-prefixed for variable arrays" rule.
func writeVarInt(w io.Writer, val uint64) error {
	buf := make([]byte, maxVarIntLen)
	n := 0
	for val >= 0x80 {
		buf[n] = byte(val) | 0x80
		val >>= 7
		n++
	}
	buf[n] = byte(val)
	n++
	_, err := w.Write(buf[:n])
	return err
}

// readVarInt deserializes a variable-length little-endian base-128 encoded
// unsigned integer from r.
func readVarInt(r io.Reader) (uint64, error) {
	buf := binarySerializer.Borrow()
	defer binarySerializer.Return(buf)

	var val uint64
	var shift uint
	one := buf[:1]
	for i := 0; i < maxVarIntLen; i++ {
		if _, err := io.ReadFull(r, one); err != nil {
			return 0, err
		}
		b := one[0]
		val |= uint64(b&0x7f) << shift
		if b < 0x80 {
			return val, nil
		}
		shift += 7
	}
	return 0, fmt.Errorf("varint too long")
}

// writeVarBytes writes a variable-length-prefixed byte slice to w.
func writeVarBytes(w io.Writer, b []byte) error {
	if err := writeVarInt(w, uint64(len(b))); err != nil {
		return err
	}
	if len(b) == 0 {
		return nil
	}
	_, err := w.Write(b)
	return err
}

// readVarBytes reads a variable-length-prefixed byte slice from r. maxAllowed
// bounds the length prefix so a corrupt or hostile stream can't force an
// enormous allocation.
func readVarBytes(r io.Reader, maxAllowed uint64, fieldName string) ([]byte, error) {
	count, err := readVarInt(r)
	if err != nil {
		return nil, err
	}
	if count > maxAllowed {
		return nil, fmt.Errorf("%s exceeds max allowed size (got %d, max %d)",
			fieldName, count, maxAllowed)
	}
	if count == 0 {
		return nil, nil
	}
	b := make([]byte, count)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}

func binarySerializerPutUint32(w io.Writer, val uint32) error {
	buf := binarySerializer.Borrow()
	defer binarySerializer.Return(buf)
	littleEndian.PutUint32(buf[:4], val)
	_, err := w.Write(buf[:4])
	return err
}

func binarySerializerUint32(r io.Reader) (uint32, error) {
	buf := binarySerializer.Borrow()
	defer binarySerializer.Return(buf)
	if _, err := io.ReadFull(r, buf[:4]); err != nil {
		return 0, err
	}
	return littleEndian.Uint32(buf[:4]), nil
}

func binarySerializerPutUint64(w io.Writer, val uint64) error {
	buf := binarySerializer.Borrow()
	defer binarySerializer.Return(buf)
	littleEndian.PutUint64(buf[:8], val)
	_, err := w.Write(buf[:8])
	return err
}

func binarySerializerUint64(r io.Reader) (uint64, error) {
	buf := binarySerializer.Borrow()
	defer binarySerializer.Return(buf)
	if _, err := io.ReadFull(r, buf[:8]); err != nil {
		return 0, err
	}
	return littleEndian.Uint64(buf[:8]), nil
}
