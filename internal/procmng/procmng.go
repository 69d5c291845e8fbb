package procmng

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/shirou/gopsutil/process"
	"github.com/unknwon/com"
)

// DaemonProcessManager signals a running vhostd daemon. Reload maps to
// SIGHUP, which makes the daemon re-read its virtual host configuration.
type DaemonProcessManager struct {
	proc *process.Process
}

func (m *DaemonProcessManager) Reload() error {
	err := m.proc.SendSignal(syscall.SIGHUP)

	if err != nil {
		return fmt.Errorf("failed to reload daemon: %v", err)
	}

	return nil
}

// GetDaemonProcessManager locates the running daemon, preferring the pid
// file and falling back to a process scan by name.
func GetDaemonProcessManager(pidFile string) (*DaemonProcessManager, error) {
	daemonProcess, err := findProcessByPidFile(pidFile)

	if err != nil || daemonProcess == nil {
		daemonProcess, err = findProcessByName([]string{"vhostd"})
	}

	if err != nil {
		return nil, err
	}

	if daemonProcess == nil {
		return nil, fmt.Errorf("vhostd process not found")
	}

	isRunning, err := daemonProcess.IsRunning()

	if err != nil {
		return nil, err
	}

	if !isRunning {
		return nil, fmt.Errorf("vhostd process is not running")
	}

	return &DaemonProcessManager{daemonProcess}, nil
}

func findProcessByPidFile(pidFile string) (*process.Process, error) {
	if pidFile == "" || !com.IsFile(pidFile) {
		return nil, nil
	}

	data, err := os.ReadFile(pidFile)

	if err != nil {
		return nil, err
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))

	if err != nil {
		return nil, fmt.Errorf("invalid pid file %s: %v", pidFile, err)
	}

	return process.NewProcess(int32(pid))
}

func findProcessByName(names []string) (*process.Process, error) {
	processes, err := process.Processes()

	if err != nil {
		return nil, err
	}

	selfPid := int32(os.Getpid())

	for _, proc := range processes {
		if proc.Pid == selfPid {
			continue
		}

		name, err := proc.Name()

		if err != nil {
			continue
		}

		for _, pName := range names {
			if name == pName {
				return proc, nil
			}
		}
	}

	return nil, nil
}

// WritePidFile records the current process id for later signalling.
func WritePidFile(pidFile string) error {
	return os.WriteFile(pidFile, []byte(strconv.Itoa(os.Getpid())), 0644)
}

func RemovePidFile(pidFile string) {
	if com.IsFile(pidFile) {
		os.Remove(pidFile)
	}
}
