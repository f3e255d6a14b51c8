package vault

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// On-disk layout, big-endian throughout:
//
//	magic            16 bytes, "RABBITHOLE_DB_V1"
//	version          uint16
//	argon2 time      uint32
//	argon2 memory    uint32 (KiB)
//	argon2 lanes     uint8
//	salt             16 bytes
//	verifier nonce   12 bytes
//	verifier length  uint16
//	verifier         n bytes (AEAD seal of the magic under the derived key)
//	record count     uint32
//	records          label len (uint16) + label + nonce (12) +
//	                 ciphertext len (uint32) + ciphertext
//
// The verifier authenticates the password before any record is touched, so
// a wrong password never produces a partial decrypt of real data.
const (
	dbMagic       = "RABBITHOLE_DB_V1"
	formatVersion = 1
)

// maxLabelLen bounds labels at the uint16 framing limit.
const maxLabelLen = 1<<16 - 1

type record struct {
	label      string
	nonce      []byte
	ciphertext []byte
}

type header struct {
	version       uint16
	params        Params
	salt          []byte
	verifierNonce []byte
	verifier      []byte
}

func encodeFile(h header, records []record) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(dbMagic)

	w := func(v any) {
		// bytes.Buffer writes cannot fail
		_ = binary.Write(&buf, binary.BigEndian, v)
	}
	w(h.version)
	w(h.params.Time)
	w(h.params.MemoryKiB)
	w(h.params.Parallelism)
	buf.Write(h.salt)
	buf.Write(h.verifierNonce)
	if len(h.verifier) > maxLabelLen {
		return nil, fmt.Errorf("%w: verifier too long", ErrInvalidInput)
	}
	w(uint16(len(h.verifier)))
	buf.Write(h.verifier)

	w(uint32(len(records)))
	for _, r := range records {
		if len(r.label) == 0 || len(r.label) > maxLabelLen {
			return nil, fmt.Errorf("%w: label length %d out of range", ErrInvalidInput, len(r.label))
		}
		w(uint16(len(r.label)))
		buf.WriteString(r.label)
		buf.Write(r.nonce)
		w(uint32(len(r.ciphertext)))
		buf.Write(r.ciphertext)
	}
	return buf.Bytes(), nil
}

// decoder reads the framed layout with bounds checks. Any short read or
// inconsistent length means the file is not a valid database.
type decoder struct {
	data []byte
	off  int
}

func (d *decoder) take(n int) ([]byte, error) {
	if n < 0 || d.off+n > len(d.data) {
		return nil, fmt.Errorf("%w: truncated at offset %d", ErrCorrupt, d.off)
	}
	b := d.data[d.off : d.off+n]
	d.off += n
	return b, nil
}

func (d *decoder) uint8() (uint8, error) {
	b, err := d.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (d *decoder) uint16() (uint16, error) {
	b, err := d.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (d *decoder) uint32() (uint32, error) {
	b, err := d.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func decodeFile(data []byte) (header, []record, error) {
	var h header
	d := &decoder{data: data}

	magic, err := d.take(len(dbMagic))
	if err != nil || string(magic) != dbMagic {
		return h, nil, fmt.Errorf("%w: bad magic", ErrCorrupt)
	}
	if h.version, err = d.uint16(); err != nil {
		return h, nil, err
	}
	if h.version != formatVersion {
		return h, nil, fmt.Errorf("%w: unsupported version %d", ErrCorrupt, h.version)
	}
	if h.params.Time, err = d.uint32(); err != nil {
		return h, nil, err
	}
	if h.params.MemoryKiB, err = d.uint32(); err != nil {
		return h, nil, err
	}
	if h.params.Parallelism, err = d.uint8(); err != nil {
		return h, nil, err
	}
	if h.salt, err = d.take(SaltSize); err != nil {
		return h, nil, err
	}
	if h.verifierNonce, err = d.take(nonceSize); err != nil {
		return h, nil, err
	}
	vlen, err := d.uint16()
	if err != nil {
		return h, nil, err
	}
	if h.verifier, err = d.take(int(vlen)); err != nil {
		return h, nil, err
	}

	count, err := d.uint32()
	if err != nil {
		return h, nil, err
	}
	// A record needs at least 19 bytes of framing, so a count beyond that
	// bound is bogus and must not drive the allocation below.
	if int(count) > (len(data)-d.off)/19 {
		return h, nil, fmt.Errorf("%w: record count %d exceeds file size", ErrCorrupt, count)
	}
	records := make([]record, 0, count)
	for i := uint32(0); i < count; i++ {
		var r record
		llen, err := d.uint16()
		if err != nil {
			return h, nil, err
		}
		label, err := d.take(int(llen))
		if err != nil {
			return h, nil, err
		}
		r.label = string(label)
		if r.nonce, err = d.take(nonceSize); err != nil {
			return h, nil, err
		}
		clen, err := d.uint32()
		if err != nil {
			return h, nil, err
		}
		if r.ciphertext, err = d.take(int(clen)); err != nil {
			return h, nil, err
		}
		records = append(records, r)
	}
	if d.off != len(data) {
		return h, nil, fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, len(data)-d.off)
	}
	return h, records, nil
}
