package speech

import (
	"context"
	"fmt"
	"runtime"
)

// playerCommand returns the command line that plays audioFile on goos.
func playerCommand(c commander, goos, audioFile string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "afplay", []string{audioFile}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		// mpg123 first since it handles MP3 files best
		candidates := []struct {
			name string
			args []string
		}{
			{"mpg123", []string{"-q", audioFile}},
			{"ffplay", []string{"-nodisp", "-autoexit", "-loglevel", "quiet", audioFile}},
			{"play", []string{"-q", audioFile}},
			{"paplay", []string{audioFile}},
			{"aplay", []string{"-q", audioFile}},
		}
		for _, cand := range candidates {
			if _, err := c.LookPath(cand.name); err == nil {
				return cand.name, cand.args, nil
			}
		}
		return "", nil, fmt.Errorf("no audio player found. Install mpg123, ffplay, sox, paplay, or aplay")
	case "windows":
		return "cmd", []string{"/c", "start", "/min", "/wait", audioFile}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}

// playFile plays audioFile and blocks until playback ends or ctx is done.
func playFile(ctx context.Context, c commander, audioFile string) error {
	name, args, err := playerCommand(c, runtime.GOOS, audioFile)
	if err != nil {
		return err
	}
	return c.Run(ctx, name, args...)
}
