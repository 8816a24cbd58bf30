// Package recorder captures one utterance from a microphone and finalizes it
// into a single WAV artifact.
package recorder

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/xpanvictor/quickpost/internal/domains/voice"
	"github.com/xpanvictor/quickpost/pkg/Logger"
	audioring "github.com/xpanvictor/quickpost/pkg/io/stt/audioRing"
)

var (
	ErrAlreadyRecording = errors.New("recording already in progress")
	ErrRecordingTooLong = errors.New("recording exceeded the maximum length")
	ErrEmptyRecording   = errors.New("recording captured no audio")
)

const MimeTypeWAV = "audio/wav"

// Format describes the PCM stream a microphone delivers. Samples are always
// signed 16-bit little endian.
type Format struct {
	SampleRate int
	Channels   int
}

func (f Format) bytesPerSecond() int {
	return f.SampleRate * f.Channels * 2
}

// Microphone is the device layer. Open starts delivering PCM blocks to sink
// until Close. Implementations should wrap voice.ErrPermissionDenied or
// voice.ErrUnsupportedDevice so the recorder can report the cause.
type Microphone interface {
	Open(ctx context.Context, sink func(pcm []byte)) (Format, error)
	Close() error
}

// Artifact is the finalized recording. It is never modified after Stop.
type Artifact struct {
	Data     []byte
	MimeType string
	Duration time.Duration
}

type Recorder struct {
	mic    Microphone
	buffer audioring.ChunkBuffer
	logger *Logger.Logger

	mu       sync.Mutex
	active   bool
	format   Format
	overflow atomic.Bool
}

// New builds a recorder that keeps at most maxBytes of framed audio.
func New(mic Microphone, maxBytes int, logger *Logger.Logger) *Recorder {
	if logger == nil {
		logger = Logger.NewNop()
	}
	return &Recorder{
		mic:    mic,
		buffer: audioring.New(maxBytes),
		logger: logger,
	}
}

// Start acquires the microphone and begins buffering.
func (r *Recorder) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active {
		return ErrAlreadyRecording
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.buffer.Reset()
	r.overflow.Store(false)

	format, err := r.mic.Open(ctx, r.accept)
	if err != nil {
		return classifyDeviceError(err)
	}
	if format.SampleRate <= 0 || format.Channels <= 0 {
		_ = r.mic.Close()
		return fmt.Errorf("%w: invalid format %+v", voice.ErrUnsupportedDevice, format)
	}

	r.format = format
	r.active = true
	r.logger.Debugf("recording started at %d Hz, %d channel(s)", format.SampleRate, format.Channels)
	return nil
}

func (r *Recorder) accept(pcm []byte) {
	if len(pcm) == 0 || r.overflow.Load() {
		return
	}
	data := make([]byte, len(pcm))
	copy(data, pcm)

	// the device may deliver before Open returns, so format is applied at Stop
	err := r.buffer.Append(audioring.AudioChunk{Data: data, Timestamp: time.Now()})
	if err != nil {
		r.overflow.Store(true)
		r.logger.Warnf("recording buffer stopped accepting audio: %v", err)
	}
}

// Stop releases the microphone and returns the finalized artifact. Stopping
// an inactive recorder is a no-op and returns (nil, nil).
func (r *Recorder) Stop() (*Artifact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.active {
		return nil, nil
	}
	r.active = false

	if err := r.mic.Close(); err != nil {
		r.logger.Warnf("failed to release microphone: %v", err)
	}

	chunks, err := r.buffer.Drain()
	if err != nil {
		return nil, fmt.Errorf("failed to read recording: %w", err)
	}
	if r.overflow.Load() {
		return nil, ErrRecordingTooLong
	}

	pcm := make([]byte, 0, pcmLength(chunks))
	for _, c := range chunks {
		pcm = append(pcm, c.Data...)
	}
	if len(pcm) == 0 {
		return nil, ErrEmptyRecording
	}

	duration := time.Duration(len(pcm)) * time.Second / time.Duration(r.format.bytesPerSecond())
	r.logger.Debugf("recording stopped: %d bytes, %s", len(pcm), duration)

	return &Artifact{
		Data:     EncodeWAV(pcm, r.format),
		MimeType: MimeTypeWAV,
		Duration: duration,
	}, nil
}

// Close releases the device and discards buffered audio.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.active {
		return nil
	}
	r.active = false
	r.buffer.Reset()
	return r.mic.Close()
}

// Active reports whether a recording is in progress.
func (r *Recorder) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

func pcmLength(chunks []audioring.AudioChunk) int {
	n := 0
	for _, c := range chunks {
		n += len(c.Data)
	}
	return n
}

func classifyDeviceError(err error) error {
	if errors.Is(err, voice.ErrPermissionDenied) || errors.Is(err, voice.ErrUnsupportedDevice) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %v", voice.ErrUnsupportedDevice, err)
}
