package serial

import (
	"errors"
	"io"
	"testing"
)

// scriptedReader returns one scripted result per Read call
type scriptedReader struct {
	steps []struct {
		data string
		err  error
	}
}

func (s *scriptedReader) add(data string, err error) {
	s.steps = append(s.steps, struct {
		data string
		err  error
	}{data, err})
}

func (s *scriptedReader) Read(b []byte) (int, error) {
	if len(s.steps) == 0 {
		return 0, errors.New("script exhausted")
	}
	step := s.steps[0]
	s.steps = s.steps[1:]
	return copy(b, step.data), step.err
}

func TestPersistentSkipsTimeouts(t *testing.T) {
	src := &scriptedReader{}
	src.add("", io.EOF)
	src.add("", io.EOF)
	src.add("abc", nil)
	src.add("de", io.EOF)

	r := Persistent(src)
	buf := make([]byte, 16)

	n, err := r.Read(buf)
	if err != nil || string(buf[:n]) != "abc" {
		t.Fatalf("Expected abc, got %q (err=%v)", buf[:n], err)
	}

	n, err = r.Read(buf)
	if err != nil || string(buf[:n]) != "de" {
		t.Fatalf("Expected de without EOF, got %q (err=%v)", buf[:n], err)
	}

	if _, err = r.Read(buf); err == nil || err == io.EOF {
		t.Errorf("Expected the underlying error to pass through, got %v", err)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("/dev/ttyACM0")
	if cfg.Device != "/dev/ttyACM0" || cfg.Baud != 115200 || cfg.ReadTimeout != 500 {
		t.Errorf("Unexpected default config %+v", cfg)
	}
}

func TestOpenNilConfig(t *testing.T) {
	if _, err := Open(nil); !errors.Is(err, ErrNilConfig) {
		t.Errorf("Expected ErrNilConfig, got %v", err)
	}
}

func TestNativePortDevice(t *testing.T) {
	var port Port = &NativePort{cfg: DefaultConfig("/dev/ttyACM1")}
	if port.Device() != "/dev/ttyACM1" {
		t.Errorf("Expected /dev/ttyACM1, got %q", port.Device())
	}
}
