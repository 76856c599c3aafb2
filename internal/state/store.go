package state

// Store binds state persistence to a single file path.
type Store struct {
	path string
}

// NewStore returns a Store for path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the backing file. See Load.
func (s *Store) Load() (AppState, error) {
	return Load(s.path)
}

// Save overwrites the backing file atomically.
func (s *Store) Save(st AppState) error {
	return Save(s.path, st)
}
