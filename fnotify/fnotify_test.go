package fnotify

import (
	"io/ioutil"
	"path/filepath"
	"testing"
	"time"
)

func TestNotifyDebounced(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "austin.osm")
	other := filepath.Join(dir, "austin.osm.json")
	if err := ioutil.WriteFile(input, []byte("<osm/>"), 0644); err != nil {
		t.Fatal(err)
	}

	n := New("test")
	n.Debounce = 50 * time.Millisecond
	if err := n.Watch([]string{input}); err != nil {
		t.Fatalf("Watch: %s", err)
	}
	res := make(chan string, 4)
	done := make(chan error, 1)
	go func() { done <- n.Run(res) }()

	for i := 0; i < 3; i++ {
		if err := ioutil.WriteFile(input, []byte("<osm></osm>"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := ioutil.WriteFile(other, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	abs, _ := filepath.Abs(input)
	select {
	case file := <-res:
		if file != abs {
			t.Errorf("Expected change for %s, got %s", abs, file)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no change notification for %s", input)
	}

	select {
	case file := <-res:
		t.Errorf("Expected one notification, got another for %s", file)
	case <-time.After(4 * n.Debounce):
	}

	n.Close()
	if err := <-done; err != nil {
		t.Errorf("Run: %s", err)
	}
}

func TestRunWithoutWatch(t *testing.T) {
	if err := New("empty").Run(make(chan string)); err == nil {
		t.Errorf("Expected Run without Watch to fail")
	}
}

func TestCloseTwice(t *testing.T) {
	n := New("twice")
	if err := n.Watch([]string{filepath.Join(t.TempDir(), "austin.osm")}); err != nil {
		t.Fatalf("Watch: %s", err)
	}
	closed := make(chan struct{})
	go func() {
		n.Close()
		n.Close()
		close(closed)
	}()
	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatalf("second Close blocked")
	}
	if err := n.Run(make(chan string)); err != nil {
		t.Errorf("Run after Close: %s", err)
	}
}
