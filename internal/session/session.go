// Package session provides chat session management: per-conversation
// message history with role context, persisted as JSONL files.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/callsight/callsight/internal/knowledge"
)

// Message is one turn of a chat session. Assistant turns carry the
// response envelope type and the tools that produced them.
type Message struct {
	Role         string    `json:"role"` // "user" or "assistant"
	Content      string    `json:"content"`
	ResponseType string    `json:"responseType,omitempty"`
	ToolsUsed    []string  `json:"toolsUsed,omitempty"`
	Timestamp    time.Time `json:"timestamp,omitempty"`
}

// Session is one conversation: an ordered message log plus the user role
// it was opened under and the currently selected member, if any.
type Session struct {
	Key            string         `json:"key"`
	UserRole       knowledge.Role `json:"userRole"`
	SelectedMember string         `json:"selectedMember,omitempty"`
	Messages       []Message      `json:"messages"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	mu             sync.RWMutex
}

// NewSession creates an empty session for the given key and role.
func NewSession(key string, role knowledge.Role) *Session {
	now := time.Now()
	return &Session{
		Key:       key,
		UserRole:  role,
		Messages:  []Message{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddUserMessage appends a user turn.
func (s *Session) AddUserMessage(content string) {
	s.append(Message{Role: "user", Content: content, Timestamp: time.Now()})
}

// AddAssistantMessage appends an assistant turn with its envelope type and
// the tools that produced it.
func (s *Session) AddAssistantMessage(content, responseType string, toolsUsed []string) {
	s.append(Message{
		Role:         "assistant",
		Content:      content,
		ResponseType: responseType,
		ToolsUsed:    toolsUsed,
		Timestamp:    time.Now(),
	})
}

func (s *Session) append(msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Messages = append(s.Messages, msg)
	s.UpdatedAt = time.Now()
}

// History returns up to maxMessages of the most recent turns.
func (s *Session) History(maxMessages int) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.Messages) <= maxMessages {
		result := make([]Message, len(s.Messages))
		copy(result, s.Messages)
		return result
	}
	result := make([]Message, maxMessages)
	copy(result, s.Messages[len(s.Messages)-maxMessages:])
	return result
}

// Clear removes all messages but keeps the role and member selection.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Messages = []Message{}
	s.UpdatedAt = time.Now()
}

// SelectMember records the member the conversation is focused on; an empty
// id clears the selection.
func (s *Session) SelectMember(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SelectedMember = id
	s.UpdatedAt = time.Now()
}

// Member returns the currently selected member id, if any.
func (s *Session) Member() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.SelectedMember
}

// Role returns the role the session was opened under.
func (s *Session) Role() knowledge.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.UserRole
}

// Manager loads and saves sessions under a directory, one JSONL file per
// session: a metadata line followed by one line per message.
type Manager struct {
	dir   string
	cache map[string]*Session
	mu    sync.RWMutex
}

// NewManager creates a session manager rooted at dir. An empty dir falls
// back to ~/.callsight/sessions.
func NewManager(dir string) *Manager {
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".callsight", "sessions")
	}
	os.MkdirAll(dir, 0755)

	return &Manager{
		dir:   dir,
		cache: make(map[string]*Session),
	}
}

// GetOrCreate returns the cached or persisted session for key, creating an
// empty one under role if none exists. The role parameter only applies to
// newly created sessions.
func (m *Manager) GetOrCreate(key string, role knowledge.Role) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.cache[key]; ok {
		return s
	}

	s := m.load(key)
	if s == nil {
		s = NewSession(key, role)
	}

	m.cache[key] = s
	return s
}

// Save persists a session to disk.
func (m *Manager) Save(s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := m.sessionPath(s.Key)

	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create session file: %w", err)
	}
	defer file.Close()

	meta := map[string]any{
		"_type":           "metadata",
		"user_role":       string(s.UserRole),
		"selected_member": s.SelectedMember,
		"created_at":      s.CreatedAt.Format(time.RFC3339),
		"updated_at":      s.UpdatedAt.Format(time.RFC3339),
	}
	metaLine, _ := json.Marshal(meta)
	file.WriteString(string(metaLine) + "\n")

	for _, msg := range s.Messages {
		msgLine, _ := json.Marshal(msg)
		file.WriteString(string(msgLine) + "\n")
	}

	m.cache[s.Key] = s
	return nil
}

// Delete removes a session from cache and disk.
func (m *Manager) Delete(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.cache, key)

	if err := os.Remove(m.sessionPath(key)); err != nil {
		return false
	}
	return true
}

// Info describes a persisted session without loading its messages.
type Info struct {
	Key       string
	UserRole  knowledge.Role
	CreatedAt time.Time
	UpdatedAt time.Time
	Path      string
}

// List returns metadata for all persisted sessions.
func (m *Manager) List() []Info {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var sessions []Info

	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return sessions
	}

	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".jsonl") {
			continue
		}

		path := filepath.Join(m.dir, entry.Name())
		key := strings.ReplaceAll(strings.TrimSuffix(entry.Name(), ".jsonl"), "_", ":")
		info := Info{Key: key, Path: path}

		if meta := readFirstLine(path); meta != nil {
			if role, ok := meta["user_role"].(string); ok {
				info.UserRole = knowledge.Role(role)
			}
			if created, ok := meta["created_at"].(string); ok {
				info.CreatedAt, _ = time.Parse(time.RFC3339, created)
			}
			if updated, ok := meta["updated_at"].(string); ok {
				info.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
			}
		}

		sessions = append(sessions, info)
	}

	return sessions
}

func readFirstLine(path string) map[string]any {
	file, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer file.Close()

	var line []byte
	buf := make([]byte, 1)
	for {
		n, _ := file.Read(buf)
		if n == 0 || buf[0] == '\n' {
			break
		}
		line = append(line, buf[0])
	}

	var meta map[string]any
	if json.Unmarshal(line, &meta) != nil {
		return nil
	}
	return meta
}

func (m *Manager) sessionPath(key string) string {
	safeKey := strings.ReplaceAll(key, ":", "_")
	// Strip path separators and traversal components to prevent path injection.
	safeKey = strings.ReplaceAll(safeKey, "/", "_")
	safeKey = strings.ReplaceAll(safeKey, "\\", "_")
	safeKey = strings.ReplaceAll(safeKey, "..", "_")
	return filepath.Join(m.dir, filepath.Base(safeKey)+".jsonl")
}

func (m *Manager) load(key string) *Session {
	path := m.sessionPath(key)

	file, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer file.Close()

	s := NewSession(key, "")
	decoder := json.NewDecoder(file)

	for decoder.More() {
		var raw json.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			break
		}

		var check map[string]any
		if json.Unmarshal(raw, &check) == nil && check["_type"] == "metadata" {
			if role, ok := check["user_role"].(string); ok {
				s.UserRole = knowledge.Role(role)
			}
			if member, ok := check["selected_member"].(string); ok {
				s.SelectedMember = member
			}
			if created, ok := check["created_at"].(string); ok {
				s.CreatedAt, _ = time.Parse(time.RFC3339, created)
			}
			if updated, ok := check["updated_at"].(string); ok {
				s.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
			}
			continue
		}

		var msg Message
		if json.Unmarshal(raw, &msg) == nil {
			s.Messages = append(s.Messages, msg)
		}
	}

	return s
}
