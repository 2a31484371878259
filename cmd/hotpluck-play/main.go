package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vsariola/hotpluck"
	"github.com/vsariola/hotpluck/graph"
	"github.com/vsariola/hotpluck/oto"
	"github.com/vsariola/hotpluck/sequencer"
	"github.com/vsariola/hotpluck/synth"
	"github.com/vsariola/hotpluck/version"
)

const sampleRate = 44100

func main() {
	stdout := flag.Bool("s", false, "Do not write files; write to standard output instead.")
	help := flag.Bool("h", false, "Show help.")
	directory := flag.String("o", "", "Directory where to output all files. The directory and its parents are created if needed. By default, everything is placed in the same directory where the original schedule file is.")
	play := flag.Bool("p", false, "Play the schedules through the audio device (default behaviour when no other output is defined).")
	chord := flag.Bool("chord", false, "Play the built-in chord instead of the built-in melody when no schedule file is given.")
	format := flag.String("format", "float32", "Output sample format for the device: float32, int16 or uint8.")
	rawOut := flag.Bool("r", false, "Output the rendered schedule as .raw file. By default, saves stereo float32 buffer to disk.")
	wavOut := flag.Bool("w", false, "Output the rendered schedule as .wav file. By default, saves stereo float32 buffer to disk.")
	pcm := flag.Bool("c", false, "Convert audio to 16-bit signed PCM when outputting.")
	norm := flag.Bool("n", false, "Normalize the rendered audio to full scale before outputting.")
	versionFlag := flag.Bool("v", false, "Print version.")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	if *help {
		flag.Usage()
		os.Exit(0)
	}
	if !*rawOut && !*wavOut {
		*play = true // if the user gives nothing to output, then the default behaviour is just to play
	}
	var audioContext hotpluck.AudioContext
	if *play {
		sampleFormat, err := parseFormat(*format)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		audioContext, err = oto.NewContext(sampleRate, 2, sampleFormat)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not acquire audio device: %v\n", err)
			os.Exit(1)
		}
	}
	process := func(filename string, schedule hotpluck.Schedule) error {
		output := func(extension string, contents []byte) error {
			if *stdout {
				os.Stdout.Write(contents)
				return nil
			}
			_, name := filepath.Split(filename)
			dir := *directory
			if dir == "" {
				var err error
				dir, err = os.Getwd()
				if err != nil {
					return fmt.Errorf("could not get working directory, specify the output directory explicitly: %v", err)
				}
			}
			name = strings.TrimSuffix(name, filepath.Ext(name)) + extension
			f := filepath.Join(dir, name)
			if err := os.MkdirAll(dir, os.ModePerm); err != nil {
				return fmt.Errorf("could not create output directory %v: %v", dir, err)
			}
			if err := os.WriteFile(f, contents, 0644); err != nil {
				return fmt.Errorf("could not write file %v: %v", f, err)
			}
			return nil
		}
		if *play {
			if err := playLive(audioContext, schedule); err != nil {
				return fmt.Errorf("playback failed: %v", err)
			}
		}
		if !*rawOut && !*wavOut {
			return nil
		}
		host := graph.NewHost(0)
		maker := synth.PluckMaker{SampleRate: sampleRate, Gain: synth.DefaultGain, Damping: synth.DefaultDamping}
		buffer, err := hotpluck.Play(host, maker, schedule, sampleRate)
		if err != nil {
			return fmt.Errorf("rendering failed: %v", err)
		}
		if *norm {
			hotpluck.Normalize(buffer)
		}
		if *rawOut {
			raw, err := hotpluck.Raw(buffer, *pcm)
			if err != nil {
				return fmt.Errorf("could not generate .raw file: %v", err)
			}
			if err := output(".raw", raw); err != nil {
				return fmt.Errorf("error outputting .raw file: %v", err)
			}
		}
		if *wavOut {
			wav, err := hotpluck.Wav(buffer, sampleRate, *pcm)
			if err != nil {
				return fmt.Errorf("could not generate .wav file: %v", err)
			}
			if err := output(".wav", wav); err != nil {
				return fmt.Errorf("error outputting .wav file: %v", err)
			}
		}
		return nil
	}
	retval := 0
	if flag.NArg() == 0 {
		schedule := hotpluck.DefaultSchedule
		name := "melody"
		if *chord {
			schedule = hotpluck.ChordSchedule(hotpluck.DefaultChord, 4, hotpluck.DefaultSchedule.BPM)
			name = "chord"
		}
		if err := process(name, schedule); err != nil {
			fmt.Fprintf(os.Stderr, "could not process the built-in %v: %v\n", name, err)
			retval = 1
		}
	}
	for _, param := range flag.Args() {
		data, err := os.ReadFile(param)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not read file %v: %v\n", param, err)
			retval = 1
			continue
		}
		schedule, err := hotpluck.ParseSchedule(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not parse file %v: %v\n", param, err)
			retval = 1
			continue
		}
		if err := process(param, schedule); err != nil {
			fmt.Fprintf(os.Stderr, "could not process file %v: %v\n", param, err)
			retval = 1
		}
	}
	os.Exit(retval)
}

// playLive plays a schedule through the device: the audio goroutine pulls
// frames from the host while the sequencer goroutine swaps units in, and a
// monitor goroutine forwards device errors to the sequencer for logging.
func playLive(audioContext hotpluck.AudioContext, schedule hotpluck.Schedule) error {
	host := graph.NewHost(0)
	host.Install(synth.Silence{})
	maker := synth.PluckMaker{SampleRate: sampleRate, Gain: synth.DefaultGain, Damping: synth.DefaultDamping}
	broker := sequencer.NewBroker()
	seq := sequencer.New(broker, host, maker, schedule)

	playback := audioContext.Play(host)
	defer playback.Close()
	go monitor(playback, broker)
	return seq.Run()
}

// monitor polls the playback for device errors and forwards them through
// the broker, so the errors get logged on the control side and never on the
// real-time path. Exits when the sequencer finishes.
func monitor(playback hotpluck.Playback, broker *sequencer.Broker) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-broker.FinishedControl:
			return
		case <-ticker.C:
			if err := playback.Err(); err != nil {
				sequencer.TrySend(broker.ToControl, sequencer.MsgToControl{Err: err})
			}
		}
	}
}

func parseFormat(name string) (oto.Format, error) {
	switch name {
	case "float32":
		return oto.FormatFloat32, nil
	case "int16":
		return oto.FormatInt16, nil
	case "uint8":
		return oto.FormatUint8, nil
	}
	return 0, fmt.Errorf("%w: %v", oto.ErrUnsupportedFormat, name)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Play .yml/.json note schedules, swapping the live unit as they go.\nUsage: %s [flags] [schedule ...]\n", os.Args[0])
	flag.PrintDefaults()
}
