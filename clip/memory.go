package clip

import (
	"bytes"
	"sync"
)

// MemoryBackend is an in-process Backend. It never transcodes, so every
// value read back is exactly the value written. It is safe for concurrent
// use.
type MemoryBackend struct {
	mu    sync.Mutex
	order []Format
	text  map[Format]string
	image []byte
}

// NewMemoryBackend returns an empty in-memory clipboard.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{text: make(map[Format]string)}
}

func (m *MemoryBackend) Name() string { return "memory" }

func (m *MemoryBackend) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearLocked()
	return nil
}

func (m *MemoryBackend) clearLocked() {
	m.order = nil
	m.text = make(map[Format]string)
	m.image = nil
}

func (m *MemoryBackend) AvailableFormats() ([]Format, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Format(nil), m.order...), nil
}

func (m *MemoryBackend) Text() (string, bool, error) { return m.getText(PlainText) }
func (m *MemoryBackend) HTML() (string, bool, error) { return m.getText(HTML) }
func (m *MemoryBackend) RTF() (string, bool, error)  { return m.getText(RTF) }

func (m *MemoryBackend) getText(f Format) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.text[f]
	return s, ok, nil
}

func (m *MemoryBackend) Image() ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.image == nil {
		return nil, false, nil
	}
	return bytes.Clone(m.image), true, nil
}

func (m *MemoryBackend) SetText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearLocked()
	m.putLocked(PlainText, text)
	return nil
}

func (m *MemoryBackend) SetHTML(html, fallback string) error {
	return m.setRich(HTML, html, fallback)
}

func (m *MemoryBackend) SetRTF(rtf, fallback string) error {
	return m.setRich(RTF, rtf, fallback)
}

func (m *MemoryBackend) setRich(f Format, rich, fallback string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearLocked()
	m.putLocked(f, rich)
	if fallback != "" {
		m.putLocked(PlainText, fallback)
	}
	return nil
}

func (m *MemoryBackend) SetImage(png []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearLocked()
	m.image = bytes.Clone(png)
	if m.image == nil {
		m.image = []byte{}
	}
	m.order = appendFormat(m.order, Image)
	return nil
}

func (m *MemoryBackend) putLocked(f Format, s string) {
	m.text[f] = s
	m.order = appendFormat(m.order, f)
}
