package archive

import (
	"bytes"
	"fmt"

	"github.com/jchantrell/winextract/internal/chunk"
)

// ResolveSound attaches audio bytes to one sound
func (a *Archive) ResolveSound(name string) (*chunk.Sound, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.soundsReady(); err != nil {
		return nil, err
	}
	s, ok := a.sounds.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: sound %q", ErrUnknownAsset, name)
	}
	if err := a.resolveSound(s); err != nil {
		return nil, err
	}
	return s, nil
}

// ResolveSounds resolves every sound in table order
func (a *Archive) ResolveSounds() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.soundsReady(); err != nil {
		return err
	}
	all := a.sounds.All()
	return a.forEach(len(all), func(i int) error {
		return a.resolveSound(all[i])
	})
}

func (a *Archive) soundsReady() error {
	if a.sounds == nil {
		return fmt.Errorf("%w: sounds not decoded", ErrNotLoaded)
	}
	if a.audio == nil {
		return fmt.Errorf("%w: audio not decoded", ErrNotLoaded)
	}
	return nil
}

func (a *Archive) resolveSound(s *chunk.Sound) error {
	if s.Audio.Resolved() {
		return nil
	}
	if s.External() {
		s.Audio.Set(chunk.Audio{Kind: chunk.AudioExternal})
		return nil
	}

	if s.GroupID < 0 || int(s.GroupID) >= len(a.audio) {
		return fmt.Errorf("%w: sound %s: audio group %d of %d", ErrIndexOutOfRange, s.Name, s.GroupID, len(a.audio))
	}
	blobs := a.audio[s.GroupID].Blobs
	if s.AudioID < 0 || int(s.AudioID) >= len(blobs) {
		return fmt.Errorf("%w: sound %s: audio %d of %d in group %d", ErrIndexOutOfRange, s.Name, s.AudioID, len(blobs), s.GroupID)
	}

	s.Audio.Set(chunk.Audio{Kind: chunk.AudioInternal, Data: bytes.Clone(blobs[s.AudioID])})
	return nil
}
