package library

import "strings"

// riskCheck pairs a detection function with its warning
type riskCheck struct {
	check   func(cmd string) bool
	warning string
}

// riskChecks run against the lower-cased command, in display order
var riskChecks = []riskCheck{
	{checkRecursiveRm, "Recursive file deletion"},
	{checkWindowsRecursiveDelete, "Recursive file deletion"},
	{checkSudo, "Runs with elevated privileges"},
	{checkChmod, "Changes file permissions"},
	{checkChown, "Changes file ownership"},
	{checkDownloadPipeShell, "Downloads and pipes to shell"},
	{checkDd, "Direct disk/device operation"},
	{checkFormat, "Filesystem creation or formatting"},
	{checkKill, "Process termination"},
	{checkRegistryDelete, "Deletes registry keys"},
	{checkShadowCopies, "Deletes volume shadow copies"},
	{checkClearLogs, "Clears event or system logs"},
}

// RiskWarnings returns warnings for potentially destructive commands.
// Duplicate warnings are reported once.
func RiskWarnings(command string) []string {
	cmd := strings.ToLower(command)

	var warnings []string
	seen := make(map[string]bool)
	for _, rc := range riskChecks {
		if seen[rc.warning] || !rc.check(cmd) {
			continue
		}
		seen[rc.warning] = true
		warnings = append(warnings, rc.warning)
	}
	return warnings
}

// hasCommand checks if cmd invokes name as a word
func hasCommand(cmd, name string) bool {
	return strings.HasPrefix(cmd, name+" ") ||
		strings.Contains(cmd, " "+name+" ") ||
		strings.Contains(cmd, "|"+name+" ") ||
		strings.Contains(cmd, ";"+name+" ")
}

func checkRecursiveRm(cmd string) bool {
	if !hasCommand(cmd, "rm") {
		return false
	}
	return strings.Contains(cmd, "-rf") || strings.Contains(cmd, "-r ") || strings.Contains(cmd, " -fr")
}

func checkWindowsRecursiveDelete(cmd string) bool {
	if strings.Contains(cmd, "remove-item") && strings.Contains(cmd, "-recurse") {
		return true
	}
	if (hasCommand(cmd, "del") || hasCommand(cmd, "rd") || hasCommand(cmd, "rmdir")) && strings.Contains(cmd, "/s") {
		return true
	}
	return false
}

func checkSudo(cmd string) bool {
	return hasCommand(cmd, "sudo") || strings.Contains(cmd, "runas ") || strings.Contains(cmd, "-verb runas")
}

func checkChmod(cmd string) bool {
	return hasCommand(cmd, "chmod") || hasCommand(cmd, "icacls") || hasCommand(cmd, "cacls")
}

func checkChown(cmd string) bool {
	return hasCommand(cmd, "chown") || hasCommand(cmd, "takeown")
}

func checkDownloadPipeShell(cmd string) bool {
	if strings.Contains(cmd, "iex") && (strings.Contains(cmd, "downloadstring") || strings.Contains(cmd, "invoke-webrequest") || strings.Contains(cmd, "iwr ")) {
		return true
	}
	if !strings.Contains(cmd, "|") {
		return false
	}
	hasFetch := strings.Contains(cmd, "curl") || strings.Contains(cmd, "wget")
	hasShell := strings.Contains(cmd, "bash") || strings.Contains(cmd, "| sh") || strings.Contains(cmd, "|sh")
	return hasFetch && hasShell
}

func checkDd(cmd string) bool {
	return hasCommand(cmd, "dd") && strings.Contains(cmd, "of=")
}

func checkFormat(cmd string) bool {
	return strings.Contains(cmd, "mkfs") || hasCommand(cmd, "format") || strings.Contains(cmd, "format-volume")
}

func checkKill(cmd string) bool {
	return hasCommand(cmd, "kill") || hasCommand(cmd, "pkill") || hasCommand(cmd, "killall") ||
		hasCommand(cmd, "taskkill") || strings.Contains(cmd, "stop-process")
}

func checkRegistryDelete(cmd string) bool {
	return strings.Contains(cmd, "reg delete") || strings.Contains(cmd, "remove-itemproperty")
}

func checkShadowCopies(cmd string) bool {
	return strings.Contains(cmd, "vssadmin") && strings.Contains(cmd, "delete")
}

func checkClearLogs(cmd string) bool {
	return strings.Contains(cmd, "wevtutil cl") || strings.Contains(cmd, "clear-eventlog") ||
		strings.Contains(cmd, "log erase") || (hasCommand(cmd, "journalctl") && strings.Contains(cmd, "--vacuum"))
}
