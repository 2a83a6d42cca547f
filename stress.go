package main

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// stressTargets lists what we can stress and how. Limited to the
// components the monitor reads.
var stressTargets = []struct {
	name string
	desc string
}{
	{"cpu", "All CPU cores (stress-ng --cpu)"},
	{"gpu", "GPU rendering/compute (glmark2 / nvidia-smi)"},
	{"ram", "Memory pressure (stress-ng --vm)"},
	{"all", "Everything at once"},
}

func runStress(args []string) {
	if len(args) == 0 {
		printStressHelp()
		return
	}

	target := strings.ToLower(args[0])

	duration := 60 * time.Second
	if len(args) > 1 {
		if d, err := time.ParseDuration(args[1]); err == nil {
			duration = d
		} else if secs, err := strconv.Atoi(args[1]); err == nil {
			duration = time.Duration(secs) * time.Second
		}
	}

	durSecs := int(duration.Seconds())
	if durSecs < 1 {
		durSecs = 60
	}

	fmt.Printf("Stressing: %s for %ds\n", target, durSecs)
	fmt.Println("Press Ctrl+C to stop early")
	fmt.Println()

	// Handle Ctrl+C to kill child processes
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	switch target {
	case "cpu":
		stressCPU(durSecs, sigCh)
	case "gpu":
		stressGPU(durSecs, sigCh)
	case "ram", "mem", "memory":
		stressRAM(durSecs, sigCh)
	case "all":
		stressAll(durSecs, sigCh)
	default:
		fmt.Fprintf(os.Stderr, "Unknown target: %s\n\n", target)
		printStressHelp()
		os.Exit(1)
	}
}

func printStressHelp() {
	fmt.Println("Usage: vitals stress <target> [duration]")
	fmt.Println()
	fmt.Println("Targets:")
	for _, t := range stressTargets {
		fmt.Printf("  %-8s  %s\n", t.name, t.desc)
	}
	fmt.Println()
	fmt.Println("Duration: e.g. '60' (seconds), '2m', '30s' (default: 60s)")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  vitals stress cpu 30s")
	fmt.Println("  vitals stress gpu 2m")
}

// ── CPU stress ───────────────────────────────────────────────────────

func stressCPU(secs int, sigCh chan os.Signal) {
	if !checkTool("stress-ng") {
		// Fallback: pure Go CPU burn
		fmt.Println("stress-ng not found, using built-in CPU burner")
		cpuBurnFallback(secs, sigCh)
		return
	}

	cpus := runtime.NumCPU()
	fmt.Printf("  stress-ng --cpu %d --timeout %ds\n", cpus, secs)
	runCmd(sigCh, "stress-ng", "--cpu", strconv.Itoa(cpus), "--timeout", fmt.Sprintf("%ds", secs))
}

func cpuBurnFallback(secs int, sigCh chan os.Signal) {
	cpus := runtime.NumCPU()
	fmt.Printf("  burning %d cores for %ds\n", cpus, secs)

	done := make(chan struct{})
	go func() {
		select {
		case <-sigCh:
		case <-time.After(time.Duration(secs) * time.Second):
		}
		close(done)
	}()

	for i := 0; i < cpus; i++ {
		go func() {
			x := 0.0
			for {
				select {
				case <-done:
					return
				default:
					x += 1.1
					x *= 0.9
				}
			}
		}()
	}

	<-done
	fmt.Println("  done")
}

// ── GPU stress ───────────────────────────────────────────────────────

func stressGPU(secs int, sigCh chan os.Signal) {
	fmt.Printf("  GPU stress for %ds\n", secs)

	// glmark2 does real rendering work; everything after it is a weak
	// substitute.
	if checkTool("glmark2") {
		fmt.Println("  glmark2 (OpenGL rendering benchmark)")
		if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
			fmt.Println("  note: needs a graphical session (DISPLAY or WAYLAND_DISPLAY)")
		}
		runCmdWithTimeout(secs, sigCh, "glmark2", "--run-forever")
		return
	}

	if checkTool("glxgears") {
		fmt.Println("  glxgears (OpenGL rendering)")
		if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
			fmt.Println("  note: needs a graphical session (DISPLAY or WAYLAND_DISPLAY)")
		}
		runCmdWithTimeout(secs, sigCh, "glxgears")
		return
	}

	if checkTool("nvidia-smi") {
		fmt.Println("  nvidia-smi query loop (light GPU load)")
		fmt.Println("  tip: install glmark2 for real GPU stress")
		done := make(chan struct{})
		go func() {
			select {
			case <-sigCh:
			case <-time.After(time.Duration(secs) * time.Second):
			}
			close(done)
		}()

		for {
			select {
			case <-done:
				fmt.Println("  done")
				return
			default:
				exec.Command("nvidia-smi", "--query-gpu=temperature.gpu", "--format=csv,noheader").Output()
			}
		}
	}

	fmt.Fprintln(os.Stderr, "  no GPU stress tool found (install glmark2)")
}

// ── RAM stress ───────────────────────────────────────────────────────

func stressRAM(secs int, sigCh chan os.Signal) {
	if checkTool("stress-ng") {
		fmt.Printf("  stress-ng --vm 2 --vm-bytes 75%% --timeout %ds\n", secs)
		runCmd(sigCh, "stress-ng", "--vm", "2", "--vm-bytes", "75%", "--timeout", fmt.Sprintf("%ds", secs))
		return
	}

	// Fallback: hold a pile of allocations and keep touching them so
	// the pages stay resident.
	fmt.Println("stress-ng not found, using built-in allocator")
	fmt.Printf("  allocating for %ds\n", secs)

	done := make(chan struct{})
	go func() {
		select {
		case <-sigCh:
		case <-time.After(time.Duration(secs) * time.Second):
		}
		close(done)
	}()

	const chunk = 64 << 20 // 64 MB per allocation, capped well below typical RAM
	var heap [][]byte
	for len(heap) < 16 {
		select {
		case <-done:
			fmt.Println("  done")
			return
		default:
			b := make([]byte, chunk)
			for i := 0; i < len(b); i += 4096 {
				b[i] = 1
			}
			heap = append(heap, b)
		}
	}
	for {
		select {
		case <-done:
			fmt.Println("  done")
			return
		default:
			for _, b := range heap {
				for i := 0; i < len(b); i += 4096 {
					b[i]++
				}
			}
		}
	}
}

// ── All at once ──────────────────────────────────────────────────────

func stressAll(secs int, sigCh chan os.Signal) {
	fmt.Printf("  Stressing ALL components for %ds\n\n", secs)

	jobs := []struct {
		name string
		fn   func(int, chan os.Signal)
	}{
		{"CPU", stressCPU},
		{"GPU", stressGPU},
		{"RAM", stressRAM},
	}

	done := make(chan struct{})
	go func() {
		select {
		case <-sigCh:
		case <-time.After(time.Duration(secs) * time.Second):
		}
		close(done)
	}()

	for _, j := range jobs {
		j := j
		jobSig := make(chan os.Signal, 1)
		go func() {
			<-done
			jobSig <- syscall.SIGTERM
		}()
		go func() {
			fmt.Printf("── Starting %s stress ──\n", j.name)
			j.fn(secs, jobSig)
		}()
	}

	<-done
	time.Sleep(500 * time.Millisecond) // let children clean up
	fmt.Println("\n  All stress targets complete")
}

// ── Helpers ──────────────────────────────────────────────────────────

func checkTool(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// runCmdWithTimeout runs a command that has no timeout mechanism of its
// own, killing it after the given duration.
func runCmdWithTimeout(secs int, sigCh chan os.Signal, name string, args ...string) {
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "  failed to start %s: %v\n", name, err)
		return
	}

	cmdDone := make(chan error, 1)
	go func() {
		cmdDone <- cmd.Wait()
	}()

	select {
	case err := <-cmdDone:
		if err != nil {
			fmt.Fprintf(os.Stderr, "  %s: %v\n", name, err)
		} else {
			fmt.Println("  completed")
		}
	case <-sigCh:
		cmd.Process.Signal(syscall.SIGTERM)
		time.Sleep(200 * time.Millisecond)
		cmd.Process.Kill()
		fmt.Println("\n  interrupted")
	case <-time.After(time.Duration(secs) * time.Second):
		cmd.Process.Signal(syscall.SIGTERM)
		time.Sleep(200 * time.Millisecond)
		cmd.Process.Kill()
		fmt.Println("  completed")
	}
}

func runCmd(sigCh chan os.Signal, name string, args ...string) {
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "  failed to start %s: %v\n", name, err)
		return
	}

	cmdDone := make(chan error, 1)
	go func() {
		cmdDone <- cmd.Wait()
	}()

	select {
	case err := <-cmdDone:
		if err != nil {
			// Exit code 1 from stress tools is normal (timeout)
			if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
				fmt.Println("  completed")
				return
			}
			fmt.Fprintf(os.Stderr, "  %s: %v\n", name, err)
		} else {
			fmt.Println("  completed")
		}
	case <-sigCh:
		cmd.Process.Signal(syscall.SIGTERM)
		time.Sleep(200 * time.Millisecond)
		cmd.Process.Kill()
		fmt.Println("\n  interrupted")
	}
}
