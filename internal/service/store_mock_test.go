package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// mockStore is an in-memory storage.Store recording every Put and Delete.
type mockStore struct {
	mu      sync.Mutex
	objects map[string]string // url -> content
	puts    []string          // keys in call order
	deletes []string          // urls in call order
	putErr  error
	delErr  error
}

func newMockStore() *mockStore {
	return &mockStore{objects: make(map[string]string)}
}

func (m *mockStore) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return "", m.putErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	url := "http://store.test/" + key
	m.objects[url] = string(data)
	m.puts = append(m.puts, key)
	return url, nil
}

func (m *mockStore) Delete(ctx context.Context, fileURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes = append(m.deletes, fileURL)
	if m.delErr != nil {
		return m.delErr
	}
	if _, ok := m.objects[fileURL]; !ok {
		return errors.New("mock store: no such object")
	}
	delete(m.objects, fileURL)
	return nil
}

func (m *mockStore) putCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.puts)
}

func (m *mockStore) contains(fileURL string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[fileURL]
	return ok
}

func uploadOf(name, contentType, content string) *Upload {
	return &Upload{
		Filename:    name,
		ContentType: contentType,
		Size:        int64(len(content)),
		Content:     strings.NewReader(content),
	}
}

// assertKeyUnder checks a recorded key is collection-scoped and
// timestamp-prefixed.
func assertKeyUnder(collection, key string) error {
	if !strings.HasPrefix(key, collection+"/") {
		return fmt.Errorf("key %q not under %q", key, collection)
	}
	rest := strings.TrimPrefix(key, collection+"/")
	if !strings.Contains(rest, "-") {
		return fmt.Errorf("key %q missing timestamp prefix", key)
	}
	return nil
}
