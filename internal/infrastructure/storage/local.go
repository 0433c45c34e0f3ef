package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

var (
	ErrInvalidName = errors.New("nom de fichier invalide")
	ErrNotFound    = errors.New("fichier introuvable")
)

type Config struct {
	BaseDir      string
	MaxSizeBytes int64
}

// LocalStorage stockage des pièces jointes sur le disque local
type LocalStorage struct {
	baseDir string
	maxSize int64
}

func NewLocalStorage(cfg *Config) (*LocalStorage, error) {
	if err := os.MkdirAll(cfg.BaseDir, 0o755); err != nil {
		return nil, fmt.Errorf("création du répertoire %s impossible: %w", cfg.BaseDir, err)
	}
	return &LocalStorage{baseDir: cfg.BaseDir, maxSize: cfg.MaxSizeBytes}, nil
}

func (s *LocalStorage) MaxSize() int64 {
	return s.maxSize
}

// Store écrit le contenu sous un nom uuid + extension d'origine et retourne ce nom
func (s *LocalStorage) Store(ctx context.Context, originalName string, content io.Reader) (string, error) {
	clean := filepath.Base(filepath.Clean(originalName))
	if strings.Contains(originalName, "..") || clean == "." || clean == string(filepath.Separator) {
		return "", fmt.Errorf("%w: %s", ErrInvalidName, originalName)
	}

	stored := uuid.New().String() + strings.ToLower(filepath.Ext(clean))
	target := filepath.Join(s.baseDir, stored)

	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("création du fichier impossible: %w", err)
	}

	if _, err := io.Copy(f, readerWithContext(ctx, content)); err != nil {
		f.Close()
		os.Remove(target)
		return "", fmt.Errorf("écriture du fichier impossible: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(target)
		return "", err
	}
	return stored, nil
}

func (s *LocalStorage) resolve(storedName string) (string, error) {
	if storedName == "" || strings.Contains(storedName, "..") || strings.ContainsAny(storedName, `/\`) {
		return "", ErrInvalidName
	}
	return filepath.Join(s.baseDir, storedName), nil
}

func (s *LocalStorage) Open(storedName string) (io.ReadCloser, error) {
	path, err := s.resolve(storedName)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	return f, err
}

// Delete ignore un fichier déjà absent
func (s *LocalStorage) Delete(storedName string) error {
	path, err := s.resolve(storedName)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("suppression du fichier impossible: %w", err)
	}
	return nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

func readerWithContext(ctx context.Context, r io.Reader) io.Reader {
	return ctxReader{ctx: ctx, r: r}
}

var Module = fx.Options(
	fx.Provide(NewLocalStorage),
)
