// Package portaudio is the desktop microphone behind the recorder.
package portaudio

import (
	"context"
	"encoding/binary"
	"fmt"
	"strings"
	"sync"

	pa "github.com/gordonklaus/portaudio"
	"github.com/xpanvictor/quickpost/internal/domains/voice"
	"github.com/xpanvictor/quickpost/pkg/io/recorder"
)

const (
	DefaultSampleRate   = 16000
	DefaultFramesPerBuf = 1024
)

type Microphone struct {
	SampleRate   int
	FramesPerBuf int

	mu     sync.Mutex
	stream *pa.Stream
}

func NewMicrophone() *Microphone {
	return &Microphone{SampleRate: DefaultSampleRate, FramesPerBuf: DefaultFramesPerBuf}
}

// Open implements recorder.Microphone. It initializes portaudio, so every
// successful Open must be paired with Close.
func (m *Microphone) Open(_ context.Context, sink func([]byte)) (recorder.Format, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stream != nil {
		return recorder.Format{}, fmt.Errorf("%w: microphone already open", voice.ErrUnsupportedDevice)
	}
	if err := pa.Initialize(); err != nil {
		return recorder.Format{}, fmt.Errorf("%w: %v", voice.ErrUnsupportedDevice, err)
	}

	device, err := pa.DefaultInputDevice()
	if err != nil || device == nil || device.MaxInputChannels < 1 {
		_ = pa.Terminate()
		return recorder.Format{}, fmt.Errorf("%w: no input device", voice.ErrUnsupportedDevice)
	}

	params := pa.StreamParameters{
		Input: pa.StreamDeviceParameters{
			Device:   device,
			Channels: 1,
			Latency:  device.DefaultLowInputLatency,
		},
		SampleRate:      float64(m.SampleRate),
		FramesPerBuffer: m.FramesPerBuf,
	}

	stream, err := pa.OpenStream(params, func(in []int16) {
		if len(in) == 0 {
			return
		}
		buf := make([]byte, len(in)*2)
		for i, s := range in {
			binary.LittleEndian.PutUint16(buf[i*2:], uint16(s))
		}
		sink(buf)
	})
	if err != nil {
		_ = pa.Terminate()
		return recorder.Format{}, classify(err)
	}
	if err := stream.Start(); err != nil {
		_ = stream.Close()
		_ = pa.Terminate()
		return recorder.Format{}, classify(err)
	}

	m.stream = stream
	return recorder.Format{SampleRate: m.SampleRate, Channels: 1}, nil
}

// Close implements recorder.Microphone.
func (m *Microphone) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stream == nil {
		return nil
	}
	stream := m.stream
	m.stream = nil

	if err := stream.Stop(); err != nil {
		_ = stream.Close()
		_ = pa.Terminate()
		return err
	}
	if err := stream.Close(); err != nil {
		_ = pa.Terminate()
		return err
	}
	return pa.Terminate()
}

func classify(err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "permission") || strings.Contains(msg, "access") {
		return fmt.Errorf("%w: %v", voice.ErrPermissionDenied, err)
	}
	return fmt.Errorf("%w: %v", voice.ErrUnsupportedDevice, err)
}
