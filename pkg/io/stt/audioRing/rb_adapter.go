package audioring

import (
	"encoding/binary"
	"sync"

	"github.com/smallnest/ringbuffer"
)

const sizePrefix = 4

type rb_impl struct {
	mu   sync.Mutex
	size int
	rb   *ringbuffer.RingBuffer
}

// Append implements ChunkBuffer.
func (r *rb_impl) Append(chunk AudioChunk) error {
	data, err := chunk.MarshalBinary()
	if err != nil {
		return err
	}

	required := len(data) + sizePrefix
	if required > r.rb.Capacity() {
		return ErrChunkTooLarge
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.rb.Free() < required {
		return ErrBufferFull
	}

	prefix := make([]byte, sizePrefix)
	binary.LittleEndian.PutUint32(prefix, uint32(len(data)))
	if _, err := r.rb.Write(prefix); err != nil {
		return err
	}
	_, err = r.rb.Write(data)
	return err
}

// Drain implements ChunkBuffer.
func (r *rb_impl) Drain() ([]AudioChunk, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	chunks := make([]AudioChunk, 0)
	for !r.rb.IsEmpty() {
		prefix := make([]byte, sizePrefix)
		if n, err := r.rb.Read(prefix); err != nil || n != sizePrefix {
			r.rb.Reset()
			return chunks, ErrCorruptFrame
		}
		size := int(binary.LittleEndian.Uint32(prefix))

		data := make([]byte, size)
		if n, err := r.rb.Read(data); err != nil || n != size {
			r.rb.Reset()
			return chunks, ErrCorruptFrame
		}

		var chunk AudioChunk
		if err := chunk.UnmarshalBinary(data); err != nil {
			r.rb.Reset()
			return chunks, err
		}
		chunks = append(chunks, chunk)
	}
	return chunks, nil
}

// Len implements ChunkBuffer.
func (r *rb_impl) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rb.Length()
}

// Capacity implements ChunkBuffer.
func (r *rb_impl) Capacity() int {
	return r.size
}

// Reset implements ChunkBuffer.
func (r *rb_impl) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rb.Reset()
}

func New(size int) ChunkBuffer {
	return &rb_impl{
		size: size,
		rb:   ringbuffer.New(size).SetBlocking(false),
	}
}
