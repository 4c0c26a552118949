// Package draft хранит черновик пользователя между запусками.
//
// Хранилище устроено как localStorage: ключ → строка. Store поверх Backend
// реализует контракт Load/Save без ошибок: любая проблема хранилища
// логируется один раз, после чего Store работает только в памяти.
package draft

import (
	"sync"

	"github.com/ilkoid/rate-my-writing/pkg/utils"
)

// Key — ключ черновика в хранилище.
const Key = "writingText"

// Backend — key/value хранилище.
type Backend interface {
	// Get возвращает (value, true, nil) если ключ есть, ("", false, nil) если нет.
	Get(key string) (string, bool, error)
	// Set перезаписывает значение.
	Set(key, value string) error
	// Close освобождает ресурсы.
	Close() error
}

// Store — хранилище черновика с деградацией в память.
//
// Thread-safe, хотя в приложении у него один владелец (UI цикл).
type Store struct {
	mu       sync.Mutex
	backend  Backend
	name     string
	memory   string
	degraded bool
}

// NewStore оборачивает backend. name используется только в логах.
// nil backend — сразу режим "только память".
func NewStore(backend Backend, name string) *Store {
	s := &Store{backend: backend, name: name}
	if backend == nil {
		s.degraded = true
	}
	return s
}

// Load возвращает сохранённый черновик или "" если его нет или хранилище недоступно.
func (s *Store) Load() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.degraded {
		return s.memory
	}

	v, ok, err := s.backend.Get(Key)
	if err != nil {
		s.degrade("load", err)
		return s.memory
	}
	if !ok {
		return ""
	}
	s.memory = v
	return v
}

// Save сохраняет текст целиком, перезаписывая прежнее значение.
//
// Ошибка хранилища не возвращается: текст остаётся в памяти.
func (s *Store) Save(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.memory = text
	if s.degraded {
		return
	}

	if err := s.backend.Set(Key, text); err != nil {
		s.degrade("save", err)
	}
}

// Degraded сообщает, что хранилище отключено и черновик живёт только в памяти.
func (s *Store) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

// Close закрывает backend.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.backend == nil {
		return nil
	}
	err := s.backend.Close()
	s.backend = nil
	s.degraded = true
	return err
}

// degrade переключает Store в память. Вызывается под мьютексом.
func (s *Store) degrade(op string, err error) {
	s.degraded = true
	utils.Warn("draft storage unavailable, keeping draft in memory only",
		"backend", s.name,
		"op", op,
		"error", err)
}
