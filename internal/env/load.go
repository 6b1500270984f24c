package env

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// DefaultPath is the dotenv file read at startup.
const DefaultPath = ".env"

// Load reads KEY=VALUE lines from path into the process environment so settings
// such as LOG_LEVEL and LOG_FORMAT can live next to the binary. Blank lines, lines
// starting with # and an optional "export " prefix are handled. Variables already
// set in the environment win. A missing file is not an error. It returns how many
// variables were set.
func Load(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	defer f.Close()

	set := 0
	scanner := bufio.NewScanner(f)
	for n := 1; scanner.Scan(); n++ {
		key, value, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		if key == "" {
			return set, fmt.Errorf("%s:%d: missing key", path, n)
		}
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return set, fmt.Errorf("%s:%d: %w", path, n, err)
		}
		set++
	}
	return set, scanner.Err()
}

// parseLine splits one dotenv line. ok is false for blank lines, comments and
// lines without '='.
func parseLine(line string) (key, value string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimPrefix(line, "export ")
	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	// Remove surrounding quotes if present
	if len(value) >= 2 && (value[0] == '"' && value[len(value)-1] == '"' || value[0] == '\'' && value[len(value)-1] == '\'') {
		value = value[1 : len(value)-1]
	}
	return key, value, true
}
