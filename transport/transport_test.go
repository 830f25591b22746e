package transport

import (
	"errors"
	"testing"
	"time"
)

// fakePort simulates a serial port for testing. Read returns scripted
// bytes one at a time; an exhausted script behaves like an expired read
// timeout (zero bytes, nil error), matching the serial library.
type fakePort struct {
	script     []byte
	written    []byte
	readErr    error
	writeErr   error
	closeCalls int
}

func (f *fakePort) Read(p []byte) (int, error) {
	if f.readErr != nil {
		return 0, f.readErr
	}
	if len(f.script) == 0 {
		return 0, nil
	}
	p[0] = f.script[0]
	f.script = f.script[1:]
	return 1, nil
}

func (f *fakePort) Write(p []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	f.written = append(f.written, p...)
	return len(p), nil
}

func (f *fakePort) Close() error {
	f.closeCalls++
	return nil
}

func (f *fakePort) SetReadTimeout(d time.Duration) error {
	return nil
}

func testConfig() Config {
	return Config{BaudRate: 256000, ReadTimeout: 50 * time.Millisecond}
}

func TestReadLineFraming(t *testing.T) {
	fake := &fakePort{script: []byte("+123.45NTO\rR\r")}
	port := newPort(fake, "fake", testConfig())

	line, err := port.ReadLine()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(line) != "+123.45NTO" {
		t.Errorf("first line = %q, want %q", line, "+123.45NTO")
	}

	line, err = port.ReadLine()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(line) != "R" {
		t.Errorf("second line = %q, want %q", line, "R")
	}
}

func TestReadLineEmptyLine(t *testing.T) {
	fake := &fakePort{script: []byte{'\r'}}
	port := newPort(fake, "fake", testConfig())

	line, err := port.ReadLine()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(line) != 0 {
		t.Errorf("line = %q, want empty", line)
	}
}

func TestReadLineTimeout(t *testing.T) {
	fake := &fakePort{}
	port := newPort(fake, "fake", testConfig())

	_, err := port.ReadLine()
	if err == nil {
		t.Fatal("expected timeout error, got nil")
	}
	if !IsTimeoutError(err) {
		t.Fatalf("error = %v, want TimeoutError", err)
	}

	var te *TimeoutError
	if !errors.As(err, &te) {
		t.Fatalf("error = %v, want *TimeoutError", err)
	}
	if !te.Timeout() {
		t.Error("Timeout() should report true")
	}
}

func TestReadLineTimeoutAfterPartialLine(t *testing.T) {
	// Terminator never arrives; the partial bytes must not leak out as
	// a line.
	fake := &fakePort{script: []byte("+12")}
	port := newPort(fake, "fake", testConfig())

	_, err := port.ReadLine()
	if !IsTimeoutError(err) {
		t.Fatalf("error = %v, want TimeoutError", err)
	}
}

func TestWriteLineAppendsTerminator(t *testing.T) {
	fake := &fakePort{}
	port := newPort(fake, "fake", testConfig())

	if err := port.WriteLine([]byte("D")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(fake.written) != "D\r" {
		t.Errorf("written = %q, want %q", fake.written, "D\r")
	}
}

func TestWriteLineError(t *testing.T) {
	fake := &fakePort{writeErr: errors.New("port vanished")}
	port := newPort(fake, "fake", testConfig())

	err := port.WriteLine([]byte("D"))
	if !IsConnectionError(err) {
		t.Fatalf("error = %v, want ConnectionError", err)
	}
}

func TestReadLineError(t *testing.T) {
	fake := &fakePort{readErr: errors.New("port vanished")}
	port := newPort(fake, "fake", testConfig())

	_, err := port.ReadLine()
	if !IsConnectionError(err) {
		t.Fatalf("error = %v, want ConnectionError", err)
	}
	if IsTimeoutError(err) {
		t.Error("a hard read failure must not be reported as a timeout")
	}
}

func TestCloseIdempotent(t *testing.T) {
	fake := &fakePort{}
	port := newPort(fake, "fake", testConfig())

	if err := port.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := port.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if fake.closeCalls != 1 {
		t.Errorf("underlying Close called %d times, want 1", fake.closeCalls)
	}
}

func TestClosedPortRejectsIO(t *testing.T) {
	fake := &fakePort{script: []byte("R\r")}
	port := newPort(fake, "fake", testConfig())
	_ = port.Close()

	if err := port.WriteLine([]byte("D")); !IsConnectionError(err) {
		t.Errorf("WriteLine on closed port: error = %v, want ConnectionError", err)
	}
	if _, err := port.ReadLine(); !IsConnectionError(err) {
		t.Errorf("ReadLine on closed port: error = %v, want ConnectionError", err)
	}
}

func TestLinkPresets(t *testing.T) {
	usb := USBConfig()
	if usb.BaudRate != 256000 || !usb.RTSCTS {
		t.Errorf("USB preset = %+v, want 256000 baud with RTS/CTS", usb)
	}

	rs232 := RS232Config()
	if rs232.BaudRate != 19200 || rs232.RTSCTS {
		t.Errorf("RS232 preset = %+v, want 19200 baud without flow control", rs232)
	}
}
