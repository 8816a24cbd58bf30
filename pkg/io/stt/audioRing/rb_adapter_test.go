package audioring

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

func TestChunkBufferPreservesOrder(t *testing.T) {
	buffer := New(1024)

	if buffer.Capacity() != 1024 {
		t.Errorf("Expected capacity 1024, got %d", buffer.Capacity())
	}
	if buffer.Len() != 0 {
		t.Errorf("Expected empty buffer, got length %d", buffer.Len())
	}

	for i := 0; i < 3; i++ {
		chunk := AudioChunk{
			Data:       []byte{byte(i), byte(i + 1), byte(i + 2)},
			Timestamp:  time.Now().Add(time.Duration(i) * time.Millisecond),
			SampleRate: 16000,
			Channels:   1,
		}
		if err := buffer.Append(chunk); err != nil {
			t.Fatalf("Failed to append chunk %d: %v", i, err)
		}
	}

	chunks, err := buffer.Drain()
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if len(chunks) != 3 {
		t.Fatalf("Expected 3 chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if c.Data[0] != byte(i) {
			t.Errorf("chunk %d out of order: first byte %d", i, c.Data[0])
		}
		if c.SampleRate != 16000 || c.Channels != 1 {
			t.Errorf("chunk %d lost format: %d Hz, %d ch", i, c.SampleRate, c.Channels)
		}
	}
	if buffer.Len() != 0 {
		t.Errorf("Buffer should be empty after drain, got length %d", buffer.Len())
	}
}

func TestChunkBufferRejectsWhenFull(t *testing.T) {
	buffer := New(64)
	chunk := AudioChunk{Data: make([]byte, 20), Timestamp: time.Now()}

	if err := buffer.Append(chunk); err != nil {
		t.Fatalf("first append: %v", err)
	}
	if err := buffer.Append(chunk); !errors.Is(err, ErrBufferFull) {
		t.Fatalf("second append: got %v, want ErrBufferFull", err)
	}

	chunks, err := buffer.Drain()
	if err != nil || len(chunks) != 1 {
		t.Fatalf("Drain = %d chunks, %v; want the first chunk kept", len(chunks), err)
	}
}

func TestChunkBufferRejectsOversizedChunk(t *testing.T) {
	buffer := New(32)
	err := buffer.Append(AudioChunk{Data: make([]byte, 64)})
	if !errors.Is(err, ErrChunkTooLarge) {
		t.Fatalf("got %v, want ErrChunkTooLarge", err)
	}
}

func TestAudioChunkSerialization(t *testing.T) {
	original := AudioChunk{
		Data:       []byte{10, 20, 30, 40, 50},
		Timestamp:  time.Now(),
		SampleRate: 48000,
		Channels:   1,
	}

	data, err := original.MarshalBinary()
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	var restored AudioChunk
	if err := restored.UnmarshalBinary(data); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if !bytes.Equal(restored.Data, original.Data) {
		t.Errorf("data = %v, want %v", restored.Data, original.Data)
	}
	if !restored.Timestamp.Equal(time.Unix(0, original.Timestamp.UnixNano())) {
		t.Errorf("timestamp = %v, want %v", restored.Timestamp, original.Timestamp)
	}

	if err := restored.UnmarshalBinary(data[:10]); !errors.Is(err, ErrCorruptFrame) {
		t.Errorf("short frame: got %v, want ErrCorruptFrame", err)
	}
}
