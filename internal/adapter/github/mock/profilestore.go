package mock

import "sync"

// ProfileStore mocks github.ProfileStore.
type ProfileStore struct {
	data    map[string][]byte
	reads   int
	updates int
	m       sync.Mutex
}

// NewProfileStore creates new ProfileStore instance with given data.
func NewProfileStore(data map[string][]byte) *ProfileStore {
	return &ProfileStore{
		data: data,
	}
}

// ReadProfile returns data saved for given login.
func (s *ProfileStore) ReadProfile(login string) ([]byte, error) {
	s.m.Lock()
	defer s.m.Unlock()

	s.reads++
	if s.data == nil {
		return nil, nil
	}

	return s.data[login], nil
}

// SaveProfile stores given data under given login.
func (s *ProfileStore) SaveProfile(login string, data []byte) error {
	s.m.Lock()
	defer s.m.Unlock()

	s.updates++
	if s.data == nil {
		s.data = make(map[string][]byte)
	}
	s.data[login] = data

	return nil
}

// Reads returns read call count.
func (s *ProfileStore) Reads() int {
	s.m.Lock()
	defer s.m.Unlock()

	return s.reads
}

// Updates returns save call count.
func (s *ProfileStore) Updates() int {
	s.m.Lock()
	defer s.m.Unlock()

	return s.updates
}

// Data returns stored data for given login.
func (s *ProfileStore) Data(login string) []byte {
	s.m.Lock()
	defer s.m.Unlock()

	return s.data[login]
}
