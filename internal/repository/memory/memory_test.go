package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/xela07ax/snortview/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

func TestSessionStore(t *testing.T) {
	ctx := context.Background()
	s := NewSessionStore()
	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	user := domain.User{ID: 1, Username: "admin", Role: domain.RoleAdmin}
	if err := s.Create(ctx, "j1", user, time.Minute); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(ctx, "j1")
	if err != nil || got != user {
		t.Fatalf("Get = %+v, %v", got, err)
	}

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("missing session: got %v", err)
	}

	now = now.Add(time.Minute)
	if _, err := s.Get(ctx, "j1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expired session: got %v", err)
	}

	if err := s.Create(ctx, "j2", user, time.Hour); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "j2"); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "j2"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if _, err := s.Get(ctx, "j2"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("deleted session: got %v", err)
	}
}

func TestSettingsStore(t *testing.T) {
	ctx := context.Background()
	s := NewSettingsStore()

	empty, err := s.LoadEntries(ctx)
	if err != nil || len(empty) != 0 {
		t.Fatalf("fresh store = %v, %v", empty, err)
	}

	if err := s.SaveEntries(ctx, map[string]string{"db_host": "a", "db_port": "5432"}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveEntries(ctx, map[string]string{"db_host": "b"}); err != nil {
		t.Fatal(err)
	}

	got, _ := s.LoadEntries(ctx)
	if got["db_host"] != "b" || got["db_port"] != "5432" {
		t.Fatalf("entries = %v", got)
	}

	got["db_host"] = "mutated"
	again, _ := s.LoadEntries(ctx)
	if again["db_host"] != "b" {
		t.Fatal("LoadEntries leaked internal map")
	}
}

func TestUserRepo(t *testing.T) {
	ctx := context.Background()

	t.Run("list returns copy of seed", func(t *testing.T) {
		r := NewUserRepo(DefaultUsers())
		list, _ := r.List(ctx)
		if len(list) != 5 || list[0].Username != "admin" || list[4].Username != "security" {
			t.Fatalf("unexpected seed: %+v", list)
		}
		list[0].Username = "mutated"
		again, _ := r.List(ctx)
		if again[0].Username != "admin" {
			t.Fatal("List leaked internal slice")
		}
	})

	t.Run("set active", func(t *testing.T) {
		r := NewUserRepo(DefaultUsers())
		u, err := r.SetActive(ctx, 3, true)
		if err != nil || !u.IsActive || u.Username != "user2" {
			t.Fatalf("SetActive = %+v, %v", u, err)
		}
		if _, err := r.SetActive(ctx, 99, true); !errors.Is(err, domain.ErrUserNotFound) {
			t.Fatalf("unknown id: got %v", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		r := NewUserRepo(DefaultUsers())
		if err := r.Delete(ctx, 2); err != nil {
			t.Fatal(err)
		}
		if err := r.Delete(ctx, 2); !errors.Is(err, domain.ErrUserNotFound) {
			t.Fatalf("second delete: got %v", err)
		}
		list, _ := r.List(ctx)
		if len(list) != 4 {
			t.Fatalf("len = %d, want 4", len(list))
		}
		for _, u := range list {
			if u.ID == 2 {
				t.Fatal("user 2 still listed")
			}
		}
	})

	t.Run("create assigns max plus one", func(t *testing.T) {
		r := NewUserRepo(DefaultUsers())
		_ = r.Delete(ctx, 3)
		u, err := r.Create(ctx, domain.User{Username: "new", IsActive: true})
		if err != nil || u.ID != 6 {
			t.Fatalf("Create = %+v, %v", u, err)
		}
		empty := NewUserRepo(nil)
		u, _ = empty.Create(ctx, domain.User{Username: "first"})
		if u.ID != 1 {
			t.Fatalf("first id = %d, want 1", u.ID)
		}
	})

	t.Run("concurrent mutations", func(t *testing.T) {
		r := NewUserRepo(DefaultUsers())
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, _ = r.SetActive(ctx, 1+i%5, i%2 == 0)
				_, _ = r.Create(ctx, domain.User{Username: "u"})
			}(i)
		}
		wg.Wait()
		list, _ := r.List(ctx)
		if len(list) != 55 {
			t.Fatalf("len = %d, want 55", len(list))
		}
		seen := make(map[int]bool)
		for _, u := range list {
			if seen[u.ID] {
				t.Fatalf("duplicate id %d", u.ID)
			}
			seen[u.ID] = true
		}
	})
}

func TestAccountRepo(t *testing.T) {
	repo, err := NewAccountRepo(DefaultCredentials(), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	acc, err := repo.GetByUsername(context.Background(), "admin")
	if err != nil || acc == nil {
		t.Fatalf("admin lookup = %v, %v", acc, err)
	}
	if acc.Role != domain.RoleAdmin {
		t.Errorf("role = %q", acc.Role)
	}
	if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte("admin123")) != nil {
		t.Error("hash does not match admin123")
	}

	acc, err = repo.GetByUsername(context.Background(), "nobody")
	if err != nil || acc != nil {
		t.Fatalf("unknown lookup = %v, %v", acc, err)
	}

	if _, err := NewAccountRepo([]Credential{{Username: "a", Password: "x"}, {Username: "a", Password: "y"}}, bcrypt.MinCost); err == nil {
		t.Fatal("duplicate usernames accepted")
	}
}

func TestStatsCache(t *testing.T) {
	ctx := context.Background()
	c := NewStatsCache(2)

	if _, ok, _ := c.Get(ctx, "a"); ok {
		t.Fatal("hit on empty cache")
	}
	_ = c.Set(ctx, "a", domain.DashboardStats{Total: 1})
	_ = c.Set(ctx, "b", domain.DashboardStats{Total: 2})

	if s, ok, _ := c.Get(ctx, "a"); !ok || s.Total != 1 {
		t.Fatalf("a = %+v, %v", s, ok)
	}

	// перезапись существующего ключа не сбрасывает кэш
	_ = c.Set(ctx, "b", domain.DashboardStats{Total: 3})
	if _, ok, _ := c.Get(ctx, "a"); !ok {
		t.Fatal("overwrite evicted other entries")
	}

	_ = c.Set(ctx, "c", domain.DashboardStats{Total: 4})
	if _, ok, _ := c.Get(ctx, "a"); ok {
		t.Fatal("cache not reset on overflow")
	}
	if s, ok, _ := c.Get(ctx, "c"); !ok || s.Total != 4 {
		t.Fatalf("c = %+v, %v", s, ok)
	}
}
