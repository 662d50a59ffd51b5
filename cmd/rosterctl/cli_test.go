package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/harvinder-fsd/roster/client"
)

// stubService is a minimal roster backend.
type stubService struct {
	mu       sync.Mutex
	students []client.Student
	nextID   int
	posts    int
	contacts []client.Contact
}

func (s *stubService) handler() http.Handler {
	mux := http.NewServeMux()
	authed := func(w http.ResponseWriter, r *http.Request) bool {
		if r.Header.Get("Authorization") != "Bearer tok-cli" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Unauthorized"}`))
			return false
		}
		return true
	}
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req client.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "admin123" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"invalid username or password"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(client.LoginResponse{Token: "tok-cli", User: client.User{ID: 1, Username: req.Username, Role: "admin"}})
	})
	mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		if !authed(w, r) {
			return
		}
		_ = json.NewEncoder(w).Encode([]client.User{{ID: 1, Username: "admin", Role: "admin"}})
	})
	mux.HandleFunc("/students", func(w http.ResponseWriter, r *http.Request) {
		if !authed(w, r) {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(s.students)
		case http.MethodPost:
			s.posts++
			var st client.Student
			_ = json.NewDecoder(r.Body).Decode(&st)
			s.nextID++
			st.ID = s.nextID
			s.students = append(s.students, st)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(st)
		}
	})
	mux.HandleFunc("/students/", func(w http.ResponseWriter, r *http.Request) {
		if !authed(w, r) {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		id, _ := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/students/"))
		for i := range s.students {
			if s.students[i].ID != id {
				continue
			}
			switch r.Method {
			case http.MethodPut:
				var st client.Student
				_ = json.NewDecoder(r.Body).Decode(&st)
				st.ID = id
				s.students[i] = st
				_ = json.NewEncoder(w).Encode(st)
			case http.MethodDelete:
				s.students = append(s.students[:i], s.students[i+1:]...)
				_ = json.NewEncoder(w).Encode(map[string]int{"id": id})
			}
			return
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"student not found"}`))
	})
	mux.HandleFunc("/api/contact", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		var c client.Contact
		_ = json.NewDecoder(r.Body).Decode(&c)
		c.ID = len(s.contacts) + 1
		s.contacts = append([]client.Contact{c}, s.contacts...)
		_, _ = w.Write([]byte(`{"success":true,"message":"Thank you for your message! I'll get back to you soon.","contact":{"id":` + strconv.Itoa(c.ID) + `}}`))
	})
	mux.HandleFunc("/api/contacts", func(w http.ResponseWriter, r *http.Request) {
		if !authed(w, r) {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		_ = json.NewEncoder(w).Encode(s.contacts)
	})
	mux.HandleFunc("/api/resume/download", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Header().Set("Content-Disposition", `attachment; filename="../Harvinder_Singh_Resume.txt"`)
		_, _ = w.Write([]byte("HARVINDER SINGH\n"))
	})
	return mux
}

func (s *stubService) postCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.posts
}

type cliEnv struct {
	t       *testing.T
	url     string
	profile string
	localDB string
}

func newCLIEnv(t *testing.T) (*cliEnv, *stubService) {
	t.Helper()
	svc := &stubService{}
	srv := httptest.NewServer(svc.handler())
	t.Cleanup(srv.Close)
	dir := t.TempDir()
	return &cliEnv{
		t:       t,
		url:     srv.URL,
		profile: filepath.Join(dir, "profile.yaml"),
		localDB: filepath.Join(dir, "local.db"),
	}, svc
}

// run executes one CLI invocation and returns its stdout.
func (e *cliEnv) run(args ...string) (string, error) {
	b := &strings.Builder{}
	root := NewRootCmd()
	root.SetOut(b)
	root.SetErr(b)
	root.SetArgs(append([]string{"--service-url", e.url, "--profile", e.profile}, args...))
	err := root.Execute()
	return b.String(), err
}

func (e *cliEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run(args...)
	if err != nil {
		e.t.Fatalf("%v failed: %v\n%s", args, err, out)
	}
	return out
}

func TestCLI_LoginStudentsLogout(t *testing.T) {
	env, svc := newCLIEnv(t)

	if _, err := env.run("users"); err == nil {
		t.Fatalf("users should require login")
	}
	if _, err := env.run("login", "-u", "admin", "-p", "wrong"); err == nil {
		t.Fatalf("bad password accepted")
	}

	out := env.mustRun("login", "-u", "admin", "-p", "admin123")
	if !strings.Contains(out, "Signed in as admin (admin)") {
		t.Fatalf("login output: %q", out)
	}
	p, err := loadProfile(env.profile)
	if err != nil || p.Token != "tok-cli" {
		t.Fatalf("profile not saved: %+v %v", p, err)
	}

	out = env.mustRun("users")
	if !strings.Contains(out, "1\tadmin\tadmin") {
		t.Fatalf("users output: %q", out)
	}

	add := func(name, roll, class, email string) {
		env.mustRun("students", "add", "--name", name, "--roll-number", roll, "--class", class,
			"--email", email, "--phone", "555-0100", "--address", "1 Main St")
	}
	add("Alice", "10", "B", "alice@example.com")
	add("Bob", "2", "A", "bob@example.com")

	out = env.mustRun("students", "list", "--sort", "rollNumber")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if !strings.HasPrefix(lines[0], "2\t2\tBob") || !strings.HasPrefix(lines[1], "1\t10\tAlice") {
		t.Fatalf("numeric roll sort broken:\n%s", out)
	}
	if !strings.Contains(out, "Classes: A, B") {
		t.Fatalf("classes missing:\n%s", out)
	}

	out = env.mustRun("students", "list", "--class", "B")
	if !strings.Contains(out, "Showing 1 of 2") {
		t.Fatalf("class filter:\n%s", out)
	}

	// duplicate roll number is caught before any request is sent
	before := svc.postCount()
	if _, err := env.run("students", "add", "--name", "Eve", "--roll-number", "10", "--class", "A",
		"--email", "eve@example.com", "--phone", "1", "--address", "x"); err == nil ||
		!strings.Contains(err.Error(), "Roll number already exists") {
		t.Fatalf("expected uniqueness error, got %v", err)
	}
	if svc.postCount() != before {
		t.Fatalf("invalid student reached the server")
	}

	env.mustRun("students", "update", "1", "--name", "Alicia")
	out = env.mustRun("students", "list", "--search", "alicia")
	if !strings.Contains(out, "Alicia") || !strings.Contains(out, "alice@example.com") {
		t.Fatalf("update lost fields:\n%s", out)
	}

	env.mustRun("students", "delete", "2")
	out = env.mustRun("students", "list", "--json")
	var left []client.Student
	if err := json.Unmarshal([]byte(out), &left); err != nil {
		t.Fatalf("json output: %v\n%s", err, out)
	}
	if len(left) != 1 || left[0].ID != 1 {
		t.Fatalf("unexpected students: %+v", left)
	}

	if _, err := env.run("students", "update", "99", "--name", "x"); err == nil {
		t.Fatalf("update of unknown id should fail")
	}

	env.mustRun("logout", "--local-db", env.localDB)
	if _, err := os.Stat(env.profile); !os.IsNotExist(err) {
		t.Fatalf("profile still present: %v", err)
	}
}

func TestCLI_PortfolioCommands(t *testing.T) {
	env, _ := newCLIEnv(t)

	if _, err := env.run("contact", "--name", "A", "--email", "bad", "--message", "short"); err == nil {
		t.Fatalf("invalid contact accepted")
	}
	out := env.mustRun("contact", "--name", "Visitor", "--email", "v@example.com", "--subject", "Hi", "--message", "I liked your portfolio a lot")
	if !strings.Contains(out, "Message sent (id 1)") {
		t.Fatalf("contact output: %q", out)
	}

	if _, err := env.run("contacts"); err == nil {
		t.Fatalf("contacts should require login")
	}
	env.mustRun("login", "-u", "admin", "-p", "admin123")
	out = env.mustRun("contacts")
	if !strings.Contains(out, "Visitor <v@example.com>") || !strings.Contains(out, "Total: 1") {
		t.Fatalf("contacts output: %q", out)
	}

	out = env.mustRun("resume", "-o", "-")
	if out != "HARVINDER SINGH\n" {
		t.Fatalf("resume stdout: %q", out)
	}

	wd, _ := os.Getwd()
	dir := t.TempDir()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Chdir(wd) }()
	env.mustRun("resume")
	raw, err := os.ReadFile(filepath.Join(dir, "Harvinder_Singh_Resume.txt"))
	if err != nil || string(raw) != "HARVINDER SINGH\n" {
		t.Fatalf("resume file: %q %v", raw, err)
	}
}

func TestCLI_LocalDataAndGames(t *testing.T) {
	env, _ := newCLIEnv(t)

	env.mustRun("local", "--local-db", env.localDB, "notes", "add", "--title", "groceries", "--content", "milk")
	out := env.mustRun("local", "--local-db", env.localDB, "notes", "list")
	if !strings.Contains(out, "groceries") || !strings.Contains(out, "Total: 1") {
		t.Fatalf("notes list: %q", out)
	}

	env.mustRun("local", "--local-db", env.localDB, "mood", "happy")
	out = env.mustRun("play", "--local-db", env.localDB, "--seed", "7", "battle", "happy")
	if !strings.HasPrefix(out, "happy vs ") {
		t.Fatalf("battle output: %q", out)
	}
	again := env.mustRun("play", "--local-db", env.localDB, "--seed", "7", "battle", "happy")
	if again != out {
		t.Fatalf("same seed should replay the same round: %q vs %q", out, again)
	}
	if _, err := env.run("play", "--local-db", env.localDB, "truth-or-dare", "maybe"); err == nil {
		t.Fatalf("invalid choice accepted")
	}

	out = env.mustRun("local", "--local-db", env.localDB, "keys")
	for _, k := range []string{"vyb_notes", "vyb_games", "vyb_user_moods", "vyb_initialized"} {
		if !strings.Contains(out, k) {
			t.Fatalf("missing key %s in %q", k, out)
		}
	}

	env.mustRun("local", "--local-db", env.localDB, "clear")
	out = env.mustRun("local", "--local-db", env.localDB, "notes", "list")
	if !strings.Contains(out, "Total: 0") {
		t.Fatalf("clear left notes: %q", out)
	}
}
