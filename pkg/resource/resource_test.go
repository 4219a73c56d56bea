package resource

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/matzehuels/veela/pkg/errors"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	url, err := s.Create([]byte("wOF2"), MIMEWOFF2)
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if !strings.HasPrefix(url, URLPrefix) {
		t.Errorf("Create() = %q, want prefix %q", url, URLPrefix)
	}

	b, err := s.Get(url)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if string(b.Data) != "wOF2" || b.MIME != MIMEWOFF2 {
		t.Errorf("Get() = %+v", b)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}

	s.Revoke(url)
	if _, err := s.Get(url); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Get() after Revoke error = %v, want %s", err, errors.ErrCodeNotFound)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}

	s.Revoke(url)
	s.Revoke("blob:veela/unknown")
}

func TestMemoryStoreUniqueURLs(t *testing.T) {
	s := NewMemoryStore()
	a, _ := s.Create([]byte("x"), MIMEOctetStream)
	b, _ := s.Create([]byte("x"), MIMEOctetStream)
	if a == b {
		t.Errorf("Create() returned the same URL twice: %s", a)
	}
}

func TestMemoryStoreRejectsEmptyMIME(t *testing.T) {
	if _, err := NewMemoryStore().Create([]byte("x"), ""); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Create() error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestMemoryStoreConcurrent(t *testing.T) {
	s := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			url, err := s.Create([]byte(fmt.Sprint(i)), MIMEWOFF2)
			if err != nil {
				t.Error(err)
				return
			}
			if _, err := s.Get(url); err != nil {
				t.Error(err)
			}
			if i%2 == 0 {
				s.Revoke(url)
			}
		}(i)
	}
	wg.Wait()
	if s.Len() != 25 {
		t.Errorf("Len() = %d, want 25", s.Len())
	}
}

func TestIDRoundTrip(t *testing.T) {
	url, _ := NewMemoryStore().Create([]byte("x"), MIMEWOFF2)
	id := ID(url)
	if id == "" || URL(id) != url {
		t.Errorf("ID(%q) = %q, URL(ID) = %q", url, id, URL(id))
	}
	if got := ID("https://example.com/font.woff2"); got != "" {
		t.Errorf("ID(foreign) = %q, want empty", got)
	}
}
