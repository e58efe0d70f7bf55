package shell

import (
	"sort"
	"strings"

	"github.com/kballard/go-shellquote"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string // Available options for this command (e.g., "-games", "-threads")
	Args    []string // Possible argument values (for non-option arguments)
}

var commandMetadata = map[string]CommandMetadata{
	"new": {
		Options: []string{"-size"},
		Args:    []string{"hva", "ava", "hvh"},
	},
	"aimove": {
		Args: []string{"all"},
	},
	"show": {
		Args: []string{"history"},
	},
	"moves": {
		Options: []string{"-n"},
	},
	"autoplay": {
		Options: []string{"-games", "-threads", "-logfile"},
		Args:    []string{"stop"},
	},
	"help": {
		Args: []string{"new", "play", "aimove", "undo", "set", "autoplay"},
	},
}

// Common command names for command completion
var commandNames = []string{
	"help", "new", "play", "p", "aimove", "hint", "undo", "show", "s",
	"moves", "eval", "set", "autoplay", "analyze", "exit",
}

var settingValues = map[string][]string{
	"ai-algorithm":             {"minimax", "alphabeta"},
	"autoplay-black-algorithm": {"minimax", "alphabeta"},
	"autoplay-white-algorithm": {"minimax", "alphabeta"},
	"ai-player":                {"1", "2"},
	"eval-cache-scope":         {"decision", "process"},
	"hash-scheme":              {"zobrist", "xxhash"},
	"debug":                    {"true", "false"},
}

func (c *ShellCompleter) settingNames() []string {
	if c.sc.config == nil {
		return nil
	}
	names := make([]string, 0)
	for k := range c.sc.config.AllSettings() {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Do implements the readline.AutoComplete interface
// It provides context-aware autocomplete based on what's been typed
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	// Get the text up to the cursor position
	text := string(line[:pos])

	// Parse the line using shellquote to handle quoted strings properly
	fields, err := shellquote.Split(text)
	if err != nil {
		// If we can't parse, fall back to simple space splitting
		fields = strings.Fields(text)
	}

	// Check if we're in the middle of typing a word or just after a space
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		// Completing a command name
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}
		// number of complete arguments before the one being typed
		nargs := len(fields) - 1
		if !endsWithSpace {
			nargs--
		}

		switch {
		case cmdName == "set" && nargs == 0:
			completions = c.settingNames()
		case cmdName == "set" && nargs == 1:
			completions = settingValues[fields[1]]
		default:
			if metadata, exists := commandMetadata[cmdName]; exists {
				if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
					completions = metadata.Options
				} else {
					completions = metadata.Args
				}
			}
		}
	}

	// Filter completions based on prefix
	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			// Return only the part that needs to be added
			suffix := completion[len(prefix):]
			matches = append(matches, []rune(suffix))
		}
	}

	return matches, len(prefix)
}
