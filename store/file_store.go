package store

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gofrs/flock"
	"github.com/josephgoksu/goalmate/models"
	yaml "gopkg.in/yaml.v3"
)

const (
	defaultDataFile   = "tasks.json" // Default filename if none is configured
	dataFileKey       = "dataFile"
	dataFileFormatKey = "dataFileFormat"
	defaultDataFormat = "json"
	formatJSON        = "json"
	formatYAML        = "yaml"
	formatTOML        = "toml"
	checksumSuffix    = ".checksum"
)

// ErrEmptyText is returned when a task is added with text that trims to empty.
var ErrEmptyText = errors.New("task text must not be empty")

// FileListStore implements the ListStore interface using a file backend.
// It supports JSON, YAML, and TOML formats and uses file-level locking.
// Tasks are kept as an ordered slice so persisted order is insertion order;
// any display ordering is derived elsewhere and never written back.
type FileListStore struct {
	filePath string
	tasks    []models.Task
	nextID   int64
	flk      *flock.Flock
	format   string // "json", "yaml", or "toml"
}

// NewFileListStore creates a new instance of FileListStore.
// It does not initialize the store; Initialize must be called separately.
func NewFileListStore() *FileListStore {
	return &FileListStore{nextID: 1}
}

// Initialize configures the FileListStore.
// It expects a 'dataFile' key in the config map specifying the path to the
// data file, defaulting to 'tasks.json' in the working directory. Existing
// tasks are loaded if the file is present and readable; a missing, corrupt
// or unparseable file yields an empty collection rather than an error.
func (s *FileListStore) Initialize(config map[string]string) error {
	if val, ok := config[dataFileKey]; ok && val != "" {
		s.filePath = val
	} else {
		s.filePath = defaultDataFile
	}

	if val, ok := config[dataFileFormatKey]; ok && val != "" {
		formatLower := strings.ToLower(val)
		switch formatLower {
		case formatJSON, formatYAML, formatTOML:
			s.format = formatLower
		default:
			return fmt.Errorf("unsupported dataFileFormat: %s. Supported formats are json, yaml, toml", val)
		}
	} else {
		s.format = defaultDataFormat
	}

	if s.filePath == defaultDataFile && s.format != formatJSON {
		ext := filepath.Ext(s.filePath)
		s.filePath = strings.TrimSuffix(s.filePath, ext) + "." + s.format
	}

	dir := filepath.Dir(s.filePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	s.flk = flock.New(s.filePath)

	locked, err := s.flk.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire initial lock for %s: %w", s.filePath, err)
	}
	if !locked {
		if err := s.flk.Lock(); err != nil {
			return fmt.Errorf("failed to acquire blocking initial lock for %s: %w", s.filePath, err)
		}
	}
	defer func() { _ = s.flk.Unlock() }()

	s.loadTasksInternal()
	return nil
}

// calculateChecksum computes the SHA256 checksum of the given data.
func calculateChecksum(data []byte) string {
	hasher := sha256.New()
	hasher.Write(data) // Write never returns an error
	return hex.EncodeToString(hasher.Sum(nil))
}

// loadTasksInternal reads tasks from the file, verifies the checksum, and
// unmarshals. It assumes the file lock is held. It never fails: a missing,
// unreadable, tampered or unparseable file resets the store to an empty
// collection, so a corrupt data file costs the list but not the session.
func (s *FileListStore) loadTasksInternal() {
	s.tasks = nil
	s.nextID = 1

	checksumFilePath := s.filePath + checksumSuffix

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			_ = os.Remove(checksumFilePath)
		}
		return
	}

	if len(data) == 0 {
		return
	}

	// Verify checksum if a checksum sidecar exists. A mismatch means the data
	// file was edited or truncated outside the store; treat it as corrupt.
	if expectedChecksumBytes, readErr := os.ReadFile(checksumFilePath); readErr == nil {
		expectedChecksum := strings.TrimSpace(string(expectedChecksumBytes))
		if expectedChecksum != "" && calculateChecksum(data) != expectedChecksum {
			return
		}
	}

	var taskList models.TaskList
	switch s.format {
	case formatJSON:
		err = json.Unmarshal(data, &taskList)
	case formatYAML:
		err = yaml.Unmarshal(data, &taskList)
	case formatTOML:
		err = toml.Unmarshal(data, &taskList)
	default:
		err = fmt.Errorf("unsupported data format: %s", s.format)
	}
	if err != nil {
		return
	}

	s.tasks = taskList.Tasks
	for _, task := range s.tasks {
		if task.ID >= s.nextID {
			s.nextID = task.ID + 1
		}
	}
}

// saveTasksInternal writes tasks to the data file, then its checksum.
// It assumes the file lock is held. Writes go through a temp file and rename
// so a crash mid-write leaves the previous snapshot intact.
func (s *FileListStore) saveTasksInternal() error {
	taskList := models.TaskList{
		Tasks:      s.tasks,
		TotalCount: len(s.tasks),
	}
	if taskList.Tasks == nil {
		taskList.Tasks = []models.Task{}
	}

	var marshaledData []byte
	var err error

	switch s.format {
	case formatJSON:
		marshaledData, err = json.MarshalIndent(taskList, "", "  ")
	case formatYAML:
		marshaledData, err = yaml.Marshal(taskList)
	case formatTOML:
		buf := new(bytes.Buffer)
		if encodeErr := toml.NewEncoder(buf).Encode(taskList); encodeErr == nil {
			marshaledData = buf.Bytes()
		} else {
			err = fmt.Errorf("failed to marshal TOML: %w", encodeErr)
		}
	default:
		return fmt.Errorf("unsupported data format for saving: %s", s.format)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal tasks to %s: %w", s.format, err)
	}

	tempFilePath := s.filePath + ".tmp"
	checksumFilePath := s.filePath + checksumSuffix
	tempChecksumFilePath := checksumFilePath + ".tmp"

	defer func() { _ = os.Remove(tempFilePath) }()
	defer func() { _ = os.Remove(tempChecksumFilePath) }()

	if err := os.WriteFile(tempFilePath, marshaledData, 0o644); err != nil {
		return fmt.Errorf("failed to write to temporary data file %s: %w", tempFilePath, err)
	}

	actualChecksum := calculateChecksum(marshaledData)
	if err := os.WriteFile(tempChecksumFilePath, []byte(actualChecksum), 0o644); err != nil {
		return fmt.Errorf("failed to write to temporary checksum file %s: %w", tempChecksumFilePath, err)
	}

	if err := os.Rename(tempFilePath, s.filePath); err != nil {
		return fmt.Errorf("failed to rename temporary data file %s to %s: %w", tempFilePath, s.filePath, err)
	}
	if err := os.Rename(tempChecksumFilePath, checksumFilePath); err != nil {
		return fmt.Errorf("data file %s updated, but failed to update checksum file %s: %w - store may be inconsistent", s.filePath, checksumFilePath, err)
	}

	return nil
}

// Add constructs a new task and appends it to the end of the collection.
func (s *FileListStore) Add(text string, priority models.TaskPriority, dueDate string) (models.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Task{}, ErrEmptyText
	}
	if priority == "" {
		priority = models.PriorityMedium
	}

	if err := s.flk.Lock(); err != nil {
		return models.Task{}, fmt.Errorf("could not lock file for add: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	task := models.Task{
		ID:        s.nextID,
		Text:      text,
		Completed: false,
		Priority:  priority,
		CreatedAt: time.Now().UTC(),
	}
	if dueDate != "" {
		due := dueDate
		task.DueDate = &due
	}

	if err := models.ValidateStruct(task); err != nil {
		return models.Task{}, fmt.Errorf("validation failed for new task: %w", err)
	}

	s.nextID++
	s.tasks = append(s.tasks, task)

	if err := s.saveTasksInternal(); err != nil {
		// Roll back the in-memory append so the store matches the file.
		s.tasks = s.tasks[:len(s.tasks)-1]
		s.nextID--
		return models.Task{}, fmt.Errorf("failed to save new task: %w", err)
	}

	return task, nil
}

// Get retrieves a task by its ID.
func (s *FileListStore) Get(id int64) (models.Task, bool, error) {
	if err := s.flk.RLock(); err != nil {
		return models.Task{}, false, fmt.Errorf("could not lock file for get: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	for _, task := range s.tasks {
		if task.ID == id {
			return task, true, nil
		}
	}
	return models.Task{}, false, nil
}

// Toggle flips the completed flag of the task with the given ID and persists.
// A missing ID leaves the collection untouched.
func (s *FileListStore) Toggle(id int64) (models.Task, bool, error) {
	if err := s.flk.Lock(); err != nil {
		return models.Task{}, false, fmt.Errorf("could not lock file for toggle: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Completed = !s.tasks[i].Completed
			if err := s.saveTasksInternal(); err != nil {
				s.tasks[i].Completed = !s.tasks[i].Completed
				return models.Task{}, true, fmt.Errorf("failed to save toggled task: %w", err)
			}
			return s.tasks[i], true, nil
		}
	}
	return models.Task{}, false, nil
}

// Remove deletes the task with the given ID and persists. A missing ID is a
// no-op, not an error.
func (s *FileListStore) Remove(id int64) (bool, error) {
	if err := s.flk.Lock(); err != nil {
		return false, fmt.Errorf("could not lock file for remove: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			removed := s.tasks[i]
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			if err := s.saveTasksInternal(); err != nil {
				s.tasks = append(s.tasks[:i], append([]models.Task{removed}, s.tasks[i:]...)...)
				return false, fmt.Errorf("failed to save after remove: %w", err)
			}
			return true, nil
		}
	}
	return false, nil
}

// ClearCompleted removes every completed task, keeping the insertion order of
// the remaining tasks, and persists.
func (s *FileListStore) ClearCompleted() (int, error) {
	if err := s.flk.Lock(); err != nil {
		return 0, fmt.Errorf("could not lock file for clear: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	remaining := make([]models.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		if !task.Completed {
			remaining = append(remaining, task)
		}
	}
	removedCount := len(s.tasks) - len(remaining)
	if removedCount == 0 {
		return 0, nil
	}

	previous := s.tasks
	s.tasks = remaining
	if err := s.saveTasksInternal(); err != nil {
		s.tasks = previous
		return 0, fmt.Errorf("failed to save after clearing completed tasks: %w", err)
	}
	return removedCount, nil
}

// Tasks returns a snapshot copy of the collection in insertion order.
func (s *FileListStore) Tasks() ([]models.Task, error) {
	if err := s.flk.RLock(); err != nil {
		return nil, fmt.Errorf("could not lock file for listing: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	snapshot := make([]models.Task, len(s.tasks))
	copy(snapshot, s.tasks)
	return snapshot, nil
}

// Backup copies the current data file to the destination path.
func (s *FileListStore) Backup(destinationPath string) error {
	if err := s.flk.RLock(); err != nil {
		return fmt.Errorf("could not lock file for backup: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			data = []byte{}
		} else {
			return fmt.Errorf("failed to read data file for backup: %w", err)
		}
	}

	dir := filepath.Dir(destinationPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create backup directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(destinationPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write backup file %s: %w", destinationPath, err)
	}
	return nil
}

// Restore replaces the current task data with data from the source path.
func (s *FileListStore) Restore(sourcePath string) error {
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to read restore source %s: %w", sourcePath, err)
	}

	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("could not lock file for restore: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	if err := os.WriteFile(s.filePath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write restored data: %w", err)
	}
	if err := os.WriteFile(s.filePath+checksumSuffix, []byte(calculateChecksum(data)), 0o644); err != nil {
		return fmt.Errorf("failed to write restored checksum: %w", err)
	}

	s.loadTasksInternal()
	return nil
}

// Close releases the file lock held by the store.
func (s *FileListStore) Close() error {
	if s.flk != nil {
		return s.flk.Unlock()
	}
	return nil
}
