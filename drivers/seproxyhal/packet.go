// Package seproxyhal implements the packet protocol between the secure
// element and the peripheral controller driving display and buttons.
//
// A packet is a tag byte, a big endian 16 bit payload length, the payload
// and a CRC-8/MAXIM checksum over everything before it.
package seproxyhal

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/sigurn/crc8"
)

var (
	ErrChecksum = errors.New("checksum mismatch")
	ErrLength   = errors.New("invalid data length")
	ErrTag      = errors.New("unexpected tag")
)

type Tag uint8

// Events sent by the peripheral controller.
const (
	TagButtonPush       Tag = 0x05
	TagDisplayProcessed Tag = 0x0d
	TagTicker           Tag = 0x0e
)

// Commands sent by the secure element.
const (
	TagDisplayBitmap Tag = 0x69
)

func (t Tag) String() string {
	switch t {
	case TagButtonPush:
		return "button push"
	case TagDisplayProcessed:
		return "display processed"
	case TagTicker:
		return "ticker"
	case TagDisplayBitmap:
		return "display bitmap"
	}
	return fmt.Sprintf("tag 0x%02x", uint8(t))
}

const (
	headerLen = 3
	MaxData   = 1<<16 - 1
)

var maximCRC8 = crc8.MakeTable(crc8.Params{Poly: 0x31, Init: 0x00, RefIn: true, RefOut: true, XorOut: 0x00, Check: 0xA1, Name: "CRC-8/MAXIM"})

type Packet struct {
	Tag  Tag
	Data []byte
}

func checksum(header, data []byte) uint8 {
	csum := crc8.Init(maximCRC8)
	csum = crc8.Update(csum, header, maximCRC8)
	csum = crc8.Update(csum, data, maximCRC8)
	return crc8.Complete(csum, maximCRC8)
}

// MarshalBinary returns the framed packet.
func (p Packet) MarshalBinary() ([]byte, error) {
	if len(p.Data) > MaxData {
		return nil, fmt.Errorf("%w: %d bytes", ErrLength, len(p.Data))
	}
	buf := make([]byte, headerLen, headerLen+len(p.Data)+1)
	buf[0] = byte(p.Tag)
	binary.BigEndian.PutUint16(buf[1:], uint16(len(p.Data)))
	buf = append(buf, p.Data...)
	buf = append(buf, checksum(buf[:headerLen], p.Data))
	return buf, nil
}

// WritePacket writes p to w in a single Write call.
func WritePacket(w io.Writer, p Packet) error {
	buf, err := p.MarshalBinary()
	if err != nil {
		return err
	}
	_, err = w.Write(buf)
	return err
}

// ReadPacket reads the next packet from r. It returns io.EOF only if r ends
// before the first byte of a packet.
func ReadPacket(r io.Reader) (Packet, error) {
	var header [headerLen]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return Packet{}, err
	}
	n := int(binary.BigEndian.Uint16(header[1:]))
	buf := make([]byte, n+1)
	if _, err := io.ReadFull(r, buf); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return Packet{}, fmt.Errorf("reading %d bytes of %v: %w", n, Tag(header[0]), err)
	}
	p := Packet{Tag: Tag(header[0]), Data: buf[:n]}
	if checksum(header[:], p.Data) != buf[n] {
		return p, fmt.Errorf("%w: %v", ErrChecksum, p.Tag)
	}
	return p, nil
}

// ButtonPush returns the event for the buttons in mask being down, bit 0
// is the left button.
func ButtonPush(mask uint8) Packet {
	return Packet{TagButtonPush, []byte{mask << 1}}
}

// ButtonMask returns the buttons down in a TagButtonPush packet.
func (p Packet) ButtonMask() (uint8, bool) {
	if p.Tag != TagButtonPush || len(p.Data) < 1 {
		return 0, false
	}
	return p.Data[0] >> 1, true
}

func Ticker() Packet {
	return Packet{Tag: TagTicker}
}

func DisplayProcessed() Packet {
	return Packet{Tag: TagDisplayProcessed}
}
