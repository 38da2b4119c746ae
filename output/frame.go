package output

import (
	"encoding/binary"
	"fmt"
	"math/bits"
	"strings"
)

// Kernel constants for speaker tone control, from
// linux/input-event-codes.h.
const (
	evSnd   = 0x12 // EV_SND
	sndTone = 0x02 // SND_TONE
)

// FrameLayout describes how the target kernel lays out one input_event
// struct: the width of the two timestamp words and the byte order.
// 64-bit kernels use two 64-bit words (24-byte frames), 32-bit ones
// two 32-bit words (16 bytes). Writing the wrong layout makes the
// kernel reject or misread the frame, so it stays configurable for
// containers and compat syscall setups.
type FrameLayout struct {
	TimeBits int // 32 or 64
	Order    binary.ByteOrder
}

// Size returns the encoded size of one event frame.
func (l FrameLayout) Size() int {
	return 2*l.TimeBits/8 + 8
}

// EncodeTone fills buf with one EV_SND/SND_TONE frame setting the
// speaker to hz; zero stops it. The timestamp words stay zero, the
// kernel ignores them on write. buf must hold at least Size() bytes.
func (l FrameLayout) EncodeTone(buf []byte, hz int32) {
	for i := range buf[:l.Size()] {
		buf[i] = 0
	}
	off := l.Size() - 8
	l.Order.PutUint16(buf[off:], evSnd)
	l.Order.PutUint16(buf[off+2:], sndTone)
	l.Order.PutUint32(buf[off+4:], uint32(hz))
}

// ParseLayout resolves a layout name from config or flags. "native"
// matches the machine running us.
func ParseLayout(name string) (FrameLayout, error) {
	switch strings.ToLower(name) {
	case "", "native":
		return FrameLayout{TimeBits: bits.UintSize, Order: binary.NativeEndian}, nil
	case "le64":
		return FrameLayout{TimeBits: 64, Order: binary.LittleEndian}, nil
	case "be64":
		return FrameLayout{TimeBits: 64, Order: binary.BigEndian}, nil
	case "le32":
		return FrameLayout{TimeBits: 32, Order: binary.LittleEndian}, nil
	case "be32":
		return FrameLayout{TimeBits: 32, Order: binary.BigEndian}, nil
	}
	return FrameLayout{}, fmt.Errorf("unknown frame layout %q (want native, le64, be64, le32 or be32)", name)
}
