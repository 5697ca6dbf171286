// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package record

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"time"
)

// writeString writes a length-prefixed UTF-8 string.
func writeString(buf *bytes.Buffer, s string) error {
	if err := writeUvarint(buf, uint64(len(s))); err != nil {
		return err
	}
	_, err := buf.WriteString(s)
	return err
}

// readString reads a length-prefixed UTF-8 string written by writeString.
func readString(r *bytes.Reader) (string, error) {
	n, err := binary.ReadUvarint(r)
	if err != nil {
		return "", fmt.Errorf("record: read string length: %w", err)
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", fmt.Errorf("record: read string body: %w", err)
	}
	return string(b), nil
}

// writeUvarint writes n as a varint.
func writeUvarint(buf *bytes.Buffer, n uint64) error {
	var tmp [binary.MaxVarintLen64]byte
	m := binary.PutUvarint(tmp[:], n)
	_, err := buf.Write(tmp[:m])
	return err
}

// readUvarint reads a varint-encoded uint64.
func readUvarint(r *bytes.Reader) (uint64, error) {
	n, err := binary.ReadUvarint(r)
	if err != nil {
		return 0, fmt.Errorf("record: read varint: %w", err)
	}
	return n, nil
}

// writeTime writes t as Unix nanoseconds.
func writeTime(buf *bytes.Buffer, t time.Time) error {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], uint64(t.UnixNano()))
	_, err := buf.Write(tmp[:])
	return err
}

// readTime reads a timestamp written by writeTime.
func readTime(r *bytes.Reader) (time.Time, error) {
	var tmp [8]byte
	if _, err := io.ReadFull(r, tmp[:]); err != nil {
		return time.Time{}, fmt.Errorf("record: read timestamp: %w", err)
	}
	nanos := int64(binary.BigEndian.Uint64(tmp[:]))
	return time.Unix(0, nanos).UTC(), nil
}

// writeStringSlice writes a count-prefixed slice of length-prefixed strings,
// used for secret tags and similar repeated string fields.
func writeStringSlice(buf *bytes.Buffer, ss []string) error {
	if err := writeUvarint(buf, uint64(len(ss))); err != nil {
		return err
	}
	for _, s := range ss {
		if err := writeString(buf, s); err != nil {
			return err
		}
	}
	return nil
}

// readStringSlice reads a slice written by writeStringSlice.
func readStringSlice(r *bytes.Reader) ([]string, error) {
	n, err := readUvarint(r)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	ss := make([]string, n)
	for i := range ss {
		s, err := readString(r)
		if err != nil {
			return nil, err
		}
		ss[i] = s
	}
	return ss, nil
}

// writeBool writes a single-byte boolean.
func writeBool(buf *bytes.Buffer, b bool) error {
	var v byte
	if b {
		v = 1
	}
	return buf.WriteByte(v)
}

// readBool reads a single-byte boolean written by writeBool.
func readBool(r *bytes.Reader) (bool, error) {
	v, err := r.ReadByte()
	if err != nil {
		return false, fmt.Errorf("record: read bool: %w", err)
	}
	return v != 0, nil
}

// writeBytes writes a length-prefixed byte slice.
func writeBytes(buf *bytes.Buffer, b []byte) error {
	if err := writeUvarint(buf, uint64(len(b))); err != nil {
		return err
	}
	_, err := buf.Write(b)
	return err
}

// readBytes reads a length-prefixed byte slice written by writeBytes.
func readBytes(r *bytes.Reader) ([]byte, error) {
	n, err := readUvarint(r)
	if err != nil {
		return nil, err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, fmt.Errorf("record: read bytes body: %w", err)
	}
	return b, nil
}

// writeStringMap writes a count-prefixed map of length-prefixed string
// key/value pairs, used for audit entry metadata.
func writeStringMap(buf *bytes.Buffer, m map[string]string) error {
	if err := writeUvarint(buf, uint64(len(m))); err != nil {
		return err
	}
	for k, v := range m {
		if err := writeString(buf, k); err != nil {
			return err
		}
		if err := writeString(buf, v); err != nil {
			return err
		}
	}
	return nil
}

// readStringMap reads a map written by writeStringMap.
func readStringMap(r *bytes.Reader) (map[string]string, error) {
	n, err := readUvarint(r)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	m := make(map[string]string, n)
	for i := uint64(0); i < n; i++ {
		k, err := readString(r)
		if err != nil {
			return nil, err
		}
		v, err := readString(r)
		if err != nil {
			return nil, err
		}
		m[k] = v
	}
	return m, nil
}
