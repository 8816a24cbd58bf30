package audioring

import (
	"encoding/binary"
	"errors"
	"time"
)

var (
	ErrBufferFull    = errors.New("audio buffer full")
	ErrChunkTooLarge = errors.New("audio chunk too large for buffer")
	ErrCorruptFrame  = errors.New("corrupt audio frame")
)

// AudioChunk is one block of PCM samples as delivered by the capture device.
type AudioChunk struct {
	Data       []byte
	Timestamp  time.Time
	SampleRate int32
	Channels   int16
}

// header: timestamp(8) + sampleRate(4) + channels(2) + dataLen(4)
const chunkHeaderSize = 18

func (a *AudioChunk) MarshalBinary() ([]byte, error) {
	buf := make([]byte, chunkHeaderSize+len(a.Data))
	binary.LittleEndian.PutUint64(buf[0:], uint64(a.Timestamp.UnixNano()))
	binary.LittleEndian.PutUint32(buf[8:], uint32(a.SampleRate))
	binary.LittleEndian.PutUint16(buf[12:], uint16(a.Channels))
	binary.LittleEndian.PutUint32(buf[14:], uint32(len(a.Data)))
	copy(buf[chunkHeaderSize:], a.Data)
	return buf, nil
}

func (a *AudioChunk) UnmarshalBinary(data []byte) error {
	if len(data) < chunkHeaderSize {
		return ErrCorruptFrame
	}
	a.Timestamp = time.Unix(0, int64(binary.LittleEndian.Uint64(data[0:])))
	a.SampleRate = int32(binary.LittleEndian.Uint32(data[8:]))
	a.Channels = int16(binary.LittleEndian.Uint16(data[12:]))
	dataLen := int(binary.LittleEndian.Uint32(data[14:]))
	if len(data)-chunkHeaderSize < dataLen {
		return ErrCorruptFrame
	}
	a.Data = make([]byte, dataLen)
	copy(a.Data, data[chunkHeaderSize:chunkHeaderSize+dataLen])
	return nil
}

// ChunkBuffer keeps audio chunks in arrival order inside a fixed byte budget.
// Unlike a live stream buffer it never evicts: once full, Append fails.
type ChunkBuffer interface {
	Append(chunk AudioChunk) error
	// Drain returns every buffered chunk in arrival order and empties the buffer.
	Drain() ([]AudioChunk, error)
	Len() int
	Capacity() int
	Reset()
}
