package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// configEnv names the config file; set to the empty string to disable it.
const configEnv = "READFILE_CONFIG_PATH"

// LoadConfigArgs reads the readfile config file and returns parsed arguments.
// Config file location: READFILE_CONFIG_PATH env var, or ~/.readfile.
// An empty READFILE_CONFIG_PATH disables the config file.
// Format: one flag per line, # comments, empty lines ignored.
// A missing file yields no arguments and no error; a file that exists but
// cannot be read is an error.
func LoadConfigArgs() ([]string, error) {
	path, ok := os.LookupEnv(configEnv)
	if ok && path == "" {
		return nil, nil
	}
	if !ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, nil
		}
		path = filepath.Join(home, ".readfile")
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	defer f.Close()

	var args []string
	scanner := bufio.NewScanner(f)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !strings.HasPrefix(line, "-") {
			return nil, fmt.Errorf("config file %s:%d: %q is not a flag", path, lineNo, line)
		}
		args = append(args, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return args, nil
}
