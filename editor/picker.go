package editor

import (
	"sync"

	"github.com/rpupo63/site-sections-backend/errs"
	"github.com/rpupo63/site-sections-backend/section"
)

type ImageTarget func(url string) error

// ImagePicker is the shared gallery. The editor that claimed it last receives
// the next selected image.
type ImagePicker struct {
	Assets section.AssetNormalizer

	mu     sync.Mutex
	owner  string
	target ImageTarget
}

func (p *ImagePicker) Claim(owner string, target ImageTarget) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.owner = owner
	p.target = target
}

// Release drops the claim if owner still holds it.
func (p *ImagePicker) Release(owner string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.owner == owner {
		p.owner = ""
		p.target = nil
	}
}

func (p *ImagePicker) Owner() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.owner
}

func (p *ImagePicker) Select(url string) error {
	p.mu.Lock()
	target := p.target
	p.mu.Unlock()

	if target == nil {
		return errs.NewNoImageTargetError()
	}
	return target(p.Assets.Normalize(url))
}
