// Package forumtest runs an in-process stand-in for the forum backend: form
// login with a session cookie, cookie-scoped anti-forgery checks, the vote
// and comment endpoints and server-rendered thread pages.
package forumtest

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/vncsmyrnk/forumvote/internal/adapters/render"
	"github.com/vncsmyrnk/forumvote/internal/core/domain"
)

const (
	sessionCookie = "sessionid"
	csrfCookie    = "csrftoken"
)

type voteKey struct {
	user   string
	widget string
}

type Server struct {
	*httptest.Server

	mu        sync.Mutex
	users     map[string]string
	sessions  map[string]string
	threads   map[string]*domain.Thread
	authors   map[string]string
	votes     map[voteKey]int
	nextID    int
	rejects   map[string]string
	csrfFails int
	voteCalls int

	// BeforeVote, when set, runs at the start of every vote request, outside
	// the server lock.
	BeforeVote func(widgetKey string)
}

func NewServer(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		users:    make(map[string]string),
		sessions: make(map[string]string),
		threads:  make(map[string]*domain.Thread),
		authors:  make(map[string]string),
		votes:    make(map[voteKey]int),
		rejects:  make(map[string]string),
		nextID:   1000,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.frontpage)
	mux.HandleFunc("/login/", s.login)
	mux.HandleFunc("/logout/", s.logout)
	mux.HandleFunc("/blog/vote/", s.vote)
	mux.HandleFunc("/blog/post/comment/", s.postComment)
	mux.HandleFunc("GET /blog/comments/{id}", s.thread)

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

func (s *Server) AddUser(username, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[username] = password
}

// AddThread registers a thread. Widget target ids and types are filled in
// from the submission and comment ids; comment authors come from
// Comment.Author.
func (s *Server) AddThread(thread domain.Thread, author string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	thread.Widget.TargetID = thread.ID
	thread.Widget.TargetType = domain.TargetSubmission
	thread.Widget.State = domain.VoteState{}
	s.authors[thread.Widget.Key()] = author

	comments := make([]domain.Comment, len(thread.Comments))
	for i, c := range thread.Comments {
		c.Widget.TargetID = c.ID
		c.Widget.TargetType = domain.TargetComment
		c.Widget.State = domain.VoteState{}
		s.authors[c.Widget.Key()] = c.Author
		comments[i] = c
	}
	thread.Comments = comments
	s.threads[thread.ID] = &thread
}

// RejectVotes makes every vote on the widget answer with the given error
// field.
func (s *Server) RejectVotes(widgetKey, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejects[widgetKey] = msg
}

// Score returns the authoritative score of a widget.
func (s *Server) Score(widgetKey string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w := s.findWidget(widgetKey); w != nil {
		return w.Score
	}
	return 0
}

func (s *Server) CSRFFailures() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.csrfFails
}

func (s *Server) VoteCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.voteCalls
}

func (s *Server) Comments(threadID string) []domain.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	th, ok := s.threads[threadID]
	if !ok {
		return nil
	}
	return append([]domain.Comment(nil), th.Comments...)
}

func (s *Server) frontpage(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("frontpage"))
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	s.ensureCSRFCookie(w, r)

	if s.currentUser(r) != "" {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	if r.Method != http.MethodPost {
		w.Write([]byte("<form>login</form>"))
		return
	}
	if !s.checkCSRF(r) {
		http.Error(w, "CSRF verification failed", http.StatusForbidden)
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		http.Error(w, "", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	want, ok := s.users[username]
	s.mu.Unlock()
	if !ok || want != password {
		w.Write([]byte("Wrong username or password."))
		return
	}

	session := randomToken()
	s.mu.Lock()
	s.sessions[session] = username
	s.mu.Unlock()
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: session, Path: "/", HttpOnly: true})

	next := r.PostFormValue("next")
	if next == "" {
		next = "/"
	}
	http.Redirect(w, r, next, http.StatusFound)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !s.checkCSRF(r) {
		http.Error(w, "CSRF verification failed", http.StatusForbidden)
		return
	}
	if c, err := r.Cookie(sessionCookie); err == nil {
		s.mu.Lock()
		delete(s.sessions, c.Value)
		s.mu.Unlock()
	}
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1})
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) vote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !s.checkCSRF(r) {
		http.Error(w, "CSRF verification failed", http.StatusForbidden)
		return
	}
	user := s.currentUser(r)
	if user == "" {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	value, err := strconv.Atoi(r.PostFormValue("vote_value"))
	if err != nil || (value != 1 && value != -1) {
		http.Error(w, "Wrong value for the vote!", http.StatusBadRequest)
		return
	}
	whatID := r.PostFormValue("what_id")
	if whatID == "" {
		http.Error(w, "Not all values were provided!", http.StatusBadRequest)
		return
	}
	whatType := r.PostFormValue("what_type")
	if whatType == "" {
		whatType = string(domain.TargetComment)
	}
	key := domain.WidgetKey(domain.TargetType(whatType), whatID)

	if s.BeforeVote != nil {
		s.BeforeVote(key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.voteCalls++

	target := s.findWidget(key)
	if target == nil {
		http.Error(w, "No such item", http.StatusBadRequest)
		return
	}
	if msg, ok := s.rejects[key]; ok {
		writeJSON(w, map[string]any{"error": msg, "voteDiff": 0})
		return
	}
	if s.authors[key] == user {
		writeJSON(w, map[string]any{"error": nil, "voteDiff": 0, "voteValue": 0})
		return
	}

	vk := voteKey{user: user, widget: key}
	old, voted := s.votes[vk]
	var diff int
	switch {
	case !voted || old == 0:
		diff = value
		s.votes[vk] = value
	case old == value:
		diff = -old
		s.votes[vk] = 0
	default:
		diff = 2 * value
		s.votes[vk] = value
	}
	target.Score += diff

	writeJSON(w, map[string]any{"error": nil, "voteDiff": diff})
}

func (s *Server) postComment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !s.checkCSRF(r) {
		http.Error(w, "CSRF verification failed", http.StatusForbidden)
		return
	}
	user := s.currentUser(r)
	if user == "" {
		writeJSON(w, map[string]any{"msg": "You need to log in to post new comments."})
		return
	}

	parentType := r.PostFormValue("parentType")
	parentID := r.PostFormValue("parentId")
	content := r.PostFormValue("commentContent")
	if parentType != "comment" && parentType != "submission" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if _, err := strconv.ParseUint(parentID, 10, 64); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if content == "" {
		writeJSON(w, map[string]any{"msg": "You have to write something."})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var thread *domain.Thread
	var replyTo string
	for _, th := range s.threads {
		if parentType == "submission" && th.ID == parentID {
			thread = th
			break
		}
		if parentType == "comment" {
			for _, c := range th.Comments {
				if c.ID == parentID {
					thread, replyTo = th, c.ID
				}
			}
		}
	}
	if thread == nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	s.nextID++
	id := strconv.Itoa(s.nextID)
	c := domain.Comment{
		ID:       id,
		ParentID: replyTo,
		Author:   user,
		Content:  content,
		Widget:   domain.VoteWidget{TargetID: id, TargetType: domain.TargetComment},
	}
	thread.Comments = append(thread.Comments, c)
	s.authors[c.Widget.Key()] = user

	writeJSON(w, map[string]any{"msg": "Your comment has been posted."})
}

func (s *Server) thread(w http.ResponseWriter, r *http.Request) {
	s.ensureCSRFCookie(w, r)
	user := s.currentUser(r)
	if user == "" {
		http.Redirect(w, r, "/login/?next="+url.QueryEscape(r.URL.Path), http.StatusFound)
		return
	}

	s.mu.Lock()
	th, ok := s.threads[r.PathValue("id")]
	var view domain.Thread
	if ok {
		view = s.userView(user, th)
	}
	s.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}

	var buf bytes.Buffer
	if err := render.Page(&buf, render.ThreadView{Thread: view}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// userView must be called with mu held.
func (s *Server) userView(user string, th *domain.Thread) domain.Thread {
	states := make(map[string]domain.VoteWidget)
	for _, wdg := range th.Widgets() {
		switch s.votes[voteKey{user: user, widget: wdg.Key()}] {
		case 1:
			wdg.State = domain.VoteState{Upvoted: true}
		case -1:
			wdg.State = domain.VoteState{Downvoted: true}
		}
		states[wdg.Key()] = wdg
	}
	return th.WithWidgets(states)
}

// findWidget must be called with mu held.
func (s *Server) findWidget(key string) *domain.VoteWidget {
	for _, th := range s.threads {
		if th.Widget.Key() == key {
			return &th.Widget
		}
		for i := range th.Comments {
			if th.Comments[i].Widget.Key() == key {
				return &th.Comments[i].Widget
			}
		}
	}
	return nil
}

func (s *Server) currentUser(r *http.Request) string {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[c.Value]
}

func (s *Server) ensureCSRFCookie(w http.ResponseWriter, r *http.Request) {
	if _, err := r.Cookie(csrfCookie); err == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{Name: csrfCookie, Value: randomToken(), Path: "/"})
}

func (s *Server) checkCSRF(r *http.Request) bool {
	c, err := r.Cookie(csrfCookie)
	ok := err == nil && c.Value != "" &&
		(r.Header.Get("X-CSRFToken") == c.Value || r.PostFormValue("csrfmiddlewaretoken") == c.Value)
	if !ok {
		s.mu.Lock()
		s.csrfFails++
		s.mu.Unlock()
	}
	return ok
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func randomToken() string {
	b := make([]byte, 16)
	rand.Read(b)
	return strings.ToUpper(hex.EncodeToString(b))
}
