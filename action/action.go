// Package action implements the osmjson commands.
package action

import (
	"io"
	"log"
	"os"

	"github.com/osmwrangle/osmjson/config"
	"github.com/osmwrangle/osmjson/data"
	"github.com/osmwrangle/osmjson/flock"
	"github.com/osmwrangle/osmjson/fnotify"
	"github.com/osmwrangle/osmjson/process"
	"github.com/osmwrangle/osmjson/resource"
	"github.com/osmwrangle/osmjson/shape"
	"github.com/osmwrangle/osmjson/streetname"
	"github.com/osmwrangle/osmjson/stringnorm"
)

var Root = resource.Root

// A ConfigLoader produces the configuration for one conversion.
type ConfigLoader func() (config.Config, error)

// Convert converts input to output (default: input + ".json") under c,
// holding the output's lock file for the duration.
func Convert(c config.Config, input, output string) (process.Stats, error) {
	shaper, err := c.Shaper()
	if err != nil {
		return process.Stats{}, err
	}
	p := process.New(input, c, shaper)
	if output != "" {
		p.Output = output
	}

	lock := flock.ForOutput(p.Output)
	if err := lock.Lock(false); err != nil {
		return process.Stats{}, err
	}
	defer lock.Unlock()
	stats, err := p.Run()
	logCacheStats(shaper.Street)
	return stats, err
}

func logCacheStats(norm shape.NameNormalizer) {
	street, ok := norm.(*streetname.Normalizer)
	if !ok {
		return
	}
	if cache, ok := street.Chain().(*stringnorm.Cached); ok {
		hits, misses := cache.Stats()
		log.Printf("street name cache: %d hits, %d misses", hits, misses)
	}
}

// PrintDefaults writes the built-in configuration, a starting point for a
// --config file.
func PrintDefaults(w io.Writer) error {
	_, err := io.WriteString(w, data.DefaultsText())
	return err
}

// Watch converts input, then converts it again whenever input or
// configFile changes, reloading the configuration each time. Conversion
// errors are logged and do not stop the watch. Watch returns when a value
// arrives on stop.
func Watch(input, output, configFile string, load ConfigLoader, stop <-chan os.Signal) error {
	watched := []string{input}
	if configFile != "" {
		watched = append(watched, Root.Path(configFile))
	}
	notifier := fnotify.New("watch")
	if err := notifier.Watch(watched); err != nil {
		return err
	}

	convert := func() {
		c, err := load()
		if err != nil {
			log.Printf("watch: config: %s", err)
			return
		}
		if _, err := Convert(c, input, output); err != nil {
			log.Printf("watch: %s", err)
		}
	}
	convert()

	changes := make(chan string, 8)
	done := make(chan error, 1)
	go func() { done <- notifier.Run(changes) }()
	log.Printf("Watching %v", watched)
	for {
		select {
		case file := <-changes:
			log.Printf("%s changed", file)
			convert()
		case sig := <-stop:
			log.Printf("%s: stopping watch", sig)
			notifier.Close()
			for {
				select {
				case err := <-done:
					return err
				case <-changes:
				}
			}
		}
	}
}
