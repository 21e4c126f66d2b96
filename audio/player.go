package audio

import (
	"sync"

	"github.com/ebitengine/oto/v3"
)

// Player plays a Tone on the default audio device.
type Player struct {
	ctx    *oto.Context
	player *oto.Player
	tone   *Tone
	mutex  sync.Mutex
}

func NewPlayer(tone *Tone, sampleRate int) (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	p := &Player{ctx: ctx, tone: tone}
	p.player = ctx.NewPlayer(tone)
	p.player.Play()
	return p, nil
}

// Update follows the machine sound state.
func (p *Player) Update(active bool) {
	p.tone.SetEnabled(active)
}

func (p *Player) Close() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.player == nil {
		return nil
	}
	err := p.player.Close()
	p.player = nil
	return err
}
