package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// config is what a successful login leaves on disk.
type config struct {
	ServerAddress string    `json:"serverAddress"`
	AccessToken   string    `json:"accessToken"`
	TokenType     string    `json:"tokenType"`
	Expiry        time.Time `json:"expiry"`
	Username      string    `json:"username"`
}

func (c *config) token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken: c.AccessToken,
		TokenType:   c.TokenType,
		Expiry:      c.Expiry,
	}
}

func getConfig() (*config, error) {
	configFile, err := configFilePath()
	if err != nil {
		return nil, err
	}
	configBytes, err := os.ReadFile(configFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Errorf(
				"no configuration was found at %s; please use `authctl login` to continue",
				configFile,
			)
		}
		return nil, errors.Wrapf(err, "error reading config file at %s", configFile)
	}

	cfg := &config{}
	if err := json.Unmarshal(configBytes, cfg); err != nil {
		return nil, errors.Wrapf(err, "error parsing config file at %s", configFile)
	}
	if !cfg.Expiry.IsZero() && time.Now().After(cfg.Expiry) {
		return nil, errors.New("the saved access token has expired; please use `authctl login` to continue")
	}
	return cfg, nil
}

func saveConfig(cfg *config) error {
	home, err := getHome()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(home, 0o700); err != nil {
		return errors.Wrapf(err, "error creating %s", home)
	}

	configBytes, err := json.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "error marshaling config")
	}
	configFile := filepath.Join(home, "config")
	if err := os.WriteFile(configFile, configBytes, 0o600); err != nil {
		return errors.Wrapf(err, "error writing to %s", configFile)
	}
	return nil
}

func deleteConfig() error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}
	if err := os.Remove(configFile); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "error deleting configuration")
	}
	return nil
}

func configFilePath() (string, error) {
	home, err := getHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "config"), nil
}

func getHome() (string, error) {
	homeDir, err := homedir.Dir()
	if err != nil {
		return "", errors.Wrap(err, "error locating user's home directory")
	}
	return filepath.Join(homeDir, ".studyflow"), nil
}
