package config

// HandleStore persists the viewer handle under USER_ID in ~/.dtwitter/.env.
type HandleStore struct{}

func (HandleStore) LoadHandle() (string, error) {
	envMap, err := LoadEnvFile()
	if err != nil {
		return "", err
	}
	return GetEnvValue("USER_ID", envMap), nil
}

func (HandleStore) SaveHandle(handle string) error {
	return SaveEnvValue("USER_ID", handle)
}
