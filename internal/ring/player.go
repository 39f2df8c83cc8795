package ring

import (
	"sync"

	"github.com/chimelabs/chime/internal/logger"
)

// LogPlayer is the built-in presentation backend: it logs playback
// start and stop instead of driving an audio device. Deployments with
// real audio hardware supply their own Player.
type LogPlayer struct {
	mu      sync.Mutex
	playing bool
	uri     string
	log     logger.Logger
}

func NewLogPlayer() *LogPlayer {
	return &LogPlayer{log: logger.Default().WithComponent(logger.ComponentRing)}
}

func (p *LogPlayer) Start(ringtoneURI string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = true
	p.uri = ringtoneURI
	p.log.Info("Playback started", "ringtone", ringtoneURI)
	return nil
}

func (p *LogPlayer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.playing {
		return
	}
	p.playing = false
	p.log.Info("Playback stopped", "ringtone", p.uri)
}

// Playing reports whether the handle is currently presenting.
func (p *LogPlayer) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}
