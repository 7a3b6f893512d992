// Package storage guarda as fotos de produtos e combos em disco local,
// servidas pelo próprio servidor HTTP.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/hugohenrick/pdv-restaurante/pkg/apperror"
)

// Buckets conhecidos
const (
	BucketProducts = "produtos"
	BucketCombos   = "combos"
)

var (
	ErrUnknownBucket  = apperror.New(apperror.KindValidation, "bucket desconhecido")
	ErrInvalidFile    = apperror.New(apperror.KindValidation, "arquivo inválido")
	allowedExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true}
)

// Local implementa o armazenamento de objetos em um diretório
type Local struct {
	root    string
	baseURL string
}

// NewLocal cria o armazenamento e seus diretórios de bucket
func NewLocal(root, baseURL string) (*Local, error) {
	for _, bucket := range []string{BucketProducts, BucketCombos} {
		if err := os.MkdirAll(filepath.Join(root, bucket), 0o755); err != nil {
			return nil, fmt.Errorf("falha ao criar bucket %s: %w", bucket, err)
		}
	}
	return &Local{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Root retorna o diretório servido em /uploads
func (l *Local) Root() string {
	return l.root
}

// FileName gera o nome do objeto a partir do instante do envio, mantendo a extensão original
func FileName(original string, now time.Time) (string, error) {
	ext := strings.ToLower(filepath.Ext(original))
	if !allowedExtensions[ext] {
		return "", apperror.Wrap(ErrInvalidFile, "extensão %q não permitida", ext)
	}
	return strconv.FormatInt(now.UnixMilli(), 10) + ext, nil
}

// Upload grava o conteúdo no bucket e retorna a URL pública
func (l *Local) Upload(ctx context.Context, bucket, filename string, r io.Reader) (string, error) {
	if bucket != BucketProducts && bucket != BucketCombos {
		return "", ErrUnknownBucket
	}
	if filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		return "", ErrInvalidFile
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(l.root, bucket, filename)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("falha ao criar arquivo: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("falha ao gravar arquivo: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("falha ao gravar arquivo: %w", err)
	}
	return l.PublicURL(bucket, filename), nil
}

// PublicURL monta a URL pública de um objeto
func (l *Local) PublicURL(bucket, filename string) string {
	return l.baseURL + "/uploads/" + bucket + "/" + filename
}
