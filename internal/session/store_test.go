package session

import (
	"testing"
	"time"
)

func TestStoreKindsAreIsolated(t *testing.T) {
	s := NewStore(time.Hour)
	defer s.Close()

	s.Put(&Session{Token: "tok-a", Kind: KindAdmin, AdminUserID: 1})
	s.Put(&Session{Token: "tok-t", Kind: KindTraveler, TravelerID: 7})

	if _, ok := s.Get("tok-a", KindTraveler); ok {
		t.Fatalf("admin token must not resolve as traveler session")
	}
	if _, ok := s.Get("tok-t", KindAdmin); ok {
		t.Fatalf("traveler token must not resolve as admin session")
	}
	if sess, ok := s.Get("tok-a", KindAdmin); !ok || sess.AdminUserID != 1 {
		t.Fatalf("admin session lost: %+v ok=%v", sess, ok)
	}
}

func TestStoreDelete(t *testing.T) {
	s := NewStore(time.Hour)
	defer s.Close()

	s.Put(&Session{Token: "tok", Kind: KindAdmin})
	s.Delete("tok")
	if _, ok := s.Get("tok", KindAdmin); ok {
		t.Fatalf("deleted session still resolves")
	}
}

func TestStoreExpiry(t *testing.T) {
	s := NewStore(10 * time.Millisecond)
	defer s.Close()

	s.Put(&Session{Token: "tok", Kind: KindAdmin})
	time.Sleep(30 * time.Millisecond)
	if _, ok := s.Get("tok", KindAdmin); ok {
		t.Fatalf("expired session still resolves")
	}
}

func TestStoreSlidingExpiry(t *testing.T) {
	s := NewStore(50 * time.Millisecond)
	defer s.Close()

	s.Put(&Session{Token: "tok", Kind: KindAdmin})
	for i := 0; i < 4; i++ {
		time.Sleep(25 * time.Millisecond)
		if _, ok := s.Get("tok", KindAdmin); !ok {
			t.Fatalf("active session expired at refresh %d", i)
		}
	}
}
