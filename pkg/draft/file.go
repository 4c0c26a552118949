package draft

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

// FileBackend хранит все ключи одним JSON-объектом в файле.
//
// Каждая запись переписывает файл атомарно: temp файл + rename.
type FileBackend struct {
	mu   sync.Mutex
	fs   afero.Fs
	path string
}

// NewFileBackend создаёт backend поверх fs. Файл создаётся при первой записи.
func NewFileBackend(fs afero.Fs, path string) *FileBackend {
	return &FileBackend{fs: fs, path: path}
}

// Get реализует Backend.
func (f *FileBackend) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := data[key]
	return v, ok, nil
}

// Set реализует Backend.
func (f *FileBackend) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.read()
	if err != nil {
		return err
	}
	data[key] = value

	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal draft file: %w", err)
	}
	return writeFileAtomic(f.fs, f.path, raw)
}

// Close реализует Backend.
func (f *FileBackend) Close() error { return nil }

// read читает JSON; отсутствующий или пустой файл — пустая map.
func (f *FileBackend) read() (map[string]string, error) {
	raw, err := afero.ReadFile(f.fs, f.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read draft file %s: %w", f.path, err)
	}
	if len(raw) == 0 {
		return map[string]string{}, nil
	}

	data := map[string]string{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse draft file %s: %w", f.path, err)
	}
	return data, nil
}

// writeFileAtomic пишет data во временный файл рядом с path и переименовывает его.
// Файл либо записан целиком, либо не изменён.
func writeFileAtomic(fs afero.Fs, path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmpFile, err := afero.TempFile(fs, dir, ".draft-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		// После успешного rename файла уже нет, ошибка не важна
		_ = fs.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := fs.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}
	return nil
}
