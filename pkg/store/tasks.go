// Package store persists the task list in a key-value string store.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"tableflip.dev/todo/pkg/task"
)

// DefaultKey is the logical name the whole task list is stored under.
const DefaultKey = "tasks"

// Storage loads and saves the complete task list.
type Storage interface {
	Load(ctx context.Context) ([]task.Task, error)
	Save(ctx context.Context, tasks []task.Task) error
}

// TaskStorage keeps the JSON-encoded task list under a single key.
type TaskStorage struct {
	KV     KV
	Key    string
	Logger *log.Logger
}

// Open builds the disk-backed storage described by cfg. A nil cfg loads the
// config from file and environment.
func Open(cfg Config) (*TaskStorage, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	kv, err := NewDiskKV(cfg.BasePath())
	if err != nil {
		return nil, err
	}
	return &TaskStorage{KV: kv, Key: cfg.Key()}, nil
}

// NewMemory returns storage backed by a fresh MemoryKV.
func NewMemory() *TaskStorage {
	return &TaskStorage{KV: NewMemoryKV()}
}

func (s *TaskStorage) key() string {
	if s.Key == "" {
		return DefaultKey
	}
	return s.Key
}

func (s *TaskStorage) logger() *log.Logger {
	if s.Logger == nil {
		return log.Default()
	}
	return s.Logger
}

// Load reads the task list. An absent key or a value that is not a valid
// task list yields an empty list; only KV read failures are returned.
func (s *TaskStorage) Load(_ context.Context) ([]task.Task, error) {
	raw, ok, err := s.KV.Get(s.key())
	if err != nil {
		return nil, err
	}
	if !ok || len(bytes.TrimSpace([]byte(raw))) == 0 {
		return []task.Task{}, nil
	}
	tasks, err := Decode([]byte(raw))
	if err != nil {
		s.logger().Warn("ignoring unreadable task list", "key", s.key(), "err", err)
		return []task.Task{}, nil
	}
	return tasks, nil
}

// Save writes the whole list, replacing the previous value.
func (s *TaskStorage) Save(_ context.Context, tasks []task.Task) error {
	data, err := Encode(tasks)
	if err != nil {
		return err
	}
	if err := s.KV.Set(s.key(), string(data)); err != nil {
		return fmt.Errorf("store: save tasks: %w", err)
	}
	return nil
}

// Encode serialises tasks. A nil list encodes as [].
func Encode(tasks []task.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []task.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("store: encode tasks: %w", err)
	}
	return data, nil
}

// Decode parses and schema-checks a serialised task list.
func Decode(data []byte) ([]task.Task, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("store: parse tasks: %w", err)
	}
	if err := tasksSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("store: invalid tasks: %w", err)
	}
	var tasks []task.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("store: decode tasks: %w", err)
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	return tasks, nil
}

const tasksSchemaURL = "https://tableflip.dev/todo/tasks.schema.json"

var tasksSchema = jsonschema.MustCompileString(tasksSchemaURL, `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "title", "createdAt"],
    "properties": {
      "id": {"type": "integer"},
      "title": {"type": "string"},
      "description": {"type": ["string", "null"]},
      "completed": {"type": "boolean"},
      "important": {"type": ["boolean", "null"]},
      "createdAt": {"type": "integer"},
      "steps": {
        "type": ["array", "null"],
        "items": {
          "type": "object",
          "required": ["id", "title"],
          "properties": {
            "id": {"type": "integer"},
            "title": {"type": "string"},
            "completed": {"type": "boolean"}
          }
        }
      }
    }
  }
}`)
