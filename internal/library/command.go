package library

import (
	"path"
	"strings"
)

// Executable returns the program a command line invokes, unwrapping
// environment assignments, sudo, common wrappers and shell -c style
// invocations. Returns "" for an empty command.
func Executable(command string) string {
	words := strings.Fields(strings.TrimSpace(command))
	if len(words) == 0 {
		return ""
	}

	// A bounded number of passes handles nesting like "sudo env X=1 sh -c '...'"
	for range 4 {
		words = skipEnvVars(words)
		if len(words) > 0 && words[0] == "sudo" {
			words = skipSudoFlags(words[1:])
		}
		words = unwrapCommand(words)
		if len(words) == 0 {
			return ""
		}

		inner, ok := extractShellCommand(words)
		if !ok {
			break
		}
		words = inner
	}

	if len(words) == 0 {
		return ""
	}
	return programName(words[0])
}

// programName strips directories, quotes and a Windows .exe suffix
func programName(word string) string {
	word = strings.Trim(word, "'\"")
	word = strings.ReplaceAll(word, "\\", "/")
	word = path.Base(word)
	if lower := strings.ToLower(word); strings.HasSuffix(lower, ".exe") {
		word = word[:len(word)-len(".exe")]
	}
	return word
}

// skipEnvVars skips environment variable assignments at the start of a command
func skipEnvVars(words []string) []string {
	for len(words) > 0 && strings.Contains(words[0], "=") && !strings.HasPrefix(words[0], "-") {
		words = words[1:]
	}
	return words
}

// skipSudoFlags advances past sudo flags and returns remaining words
func skipSudoFlags(words []string) []string {
	for len(words) > 0 {
		w := words[0]
		if !strings.HasPrefix(w, "-") {
			return words
		}
		// Flags that take an argument
		if w == "-u" || w == "-g" || w == "-C" || w == "-D" || w == "-h" || w == "-p" {
			if len(words) > 1 {
				words = words[2:]
			} else {
				words = words[1:]
			}
		} else {
			words = words[1:]
		}
	}
	return words
}

// unwrapCommand handles command wrappers like env, time, nice, etc.
func unwrapCommand(words []string) []string {
	if len(words) == 0 {
		return words
	}

	switch words[0] {
	case "env":
		return unwrapEnv(words)
	case "time", "nohup", "strace", "ltrace", "watch":
		return unwrapSimple(words)
	case "nice":
		return unwrapNice(words)
	case "xargs":
		return unwrapFlagged(words)
	default:
		return words
	}
}

// unwrapEnv handles: env VAR=val command or env -i command
func unwrapEnv(words []string) []string {
	for i := 1; i < len(words); i++ {
		if strings.Contains(words[i], "=") || strings.HasPrefix(words[i], "-") {
			continue
		}
		return words[i:]
	}
	return nil
}

// unwrapSimple handles wrappers that just prefix a command
func unwrapSimple(words []string) []string {
	if len(words) > 1 {
		return words[1:]
	}
	return nil
}

// unwrapNice handles: nice -n VALUE command
func unwrapNice(words []string) []string {
	for i := 1; i < len(words); i++ {
		if words[i] == "-n" && i+1 < len(words) {
			i++ // skip the priority value
			continue
		}
		if strings.HasPrefix(words[i], "-") {
			continue
		}
		return words[i:]
	}
	return nil
}

// unwrapFlagged handles: wrapper [flags] command
func unwrapFlagged(words []string) []string {
	for i := 1; i < len(words); i++ {
		if !strings.HasPrefix(words[i], "-") {
			return words[i:]
		}
	}
	return nil
}

// shellRunFlags maps shells to the flag that introduces an inline command
var shellRunFlags = map[string][]string{
	"sh":             {"-c"},
	"bash":           {"-c"},
	"zsh":            {"-c"},
	"cmd":            {"/c", "/k"},
	"powershell":     {"-command", "-c"},
	"pwsh":           {"-command", "-c"},
	"powershell.exe": {"-command", "-c"},
	"cmd.exe":        {"/c", "/k"},
}

// extractShellCommand extracts the inner command from "sh -c 'command'",
// "cmd /c command" or "powershell -Command command"
func extractShellCommand(words []string) ([]string, bool) {
	flags, ok := shellRunFlags[strings.ToLower(words[0])]
	if !ok {
		return words, false
	}

	for i := 1; i < len(words); i++ {
		w := strings.ToLower(words[i])
		for _, f := range flags {
			if w != f || i+1 >= len(words) {
				continue
			}
			inner := strings.Join(words[i+1:], " ")
			inner = strings.Trim(strings.TrimSpace(inner), "'\"")
			return strings.Fields(inner), true
		}
	}
	return words, false
}
