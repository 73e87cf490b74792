package section

import (
	"fmt"

	"github.com/rpupo63/site-sections-backend/errs"
)

// CurrentVersion is stamped on rows whose content has been written by this
// codebase. Pricing content at this version always carries the popular marker.
const CurrentVersion = 2

// Payload is the typed content of one section. The set of implementations is
// closed: Banner, Plans, Testimonials, Projects, Blocks, FAQs, Slides, Content
// and CustomHTML.
type Payload interface {
	Kind() Kind
}

// Decode parses content according to kind. Malformed JSON documents that no
// legacy grammar accepts return ErrMalformedContent.
func Decode(kind Kind, content string) (Payload, error) {
	switch kind {
	case KindBanner:
		return ParseBanner(content), nil
	case KindPricing:
		return ParsePlans(content), nil
	case KindTestimonials:
		items, _, err := ParseTestimonials(content)
		return items, err
	case KindProjects:
		items, _, err := ParseProjects(content)
		return items, err
	case KindTextImage:
		items, _, err := ParseBlocks(content)
		return items, err
	case KindFAQ:
		return ParseFAQs(content), nil
	case KindSlider:
		return ParseSlides(content)
	case KindContent:
		return Content{Body: content}, nil
	case KindCustomHTML:
		return CustomHTML{HTML: content}, nil
	}
	return nil, errs.NewUnsupportedSectionTypeError(string(kind))
}

// DecodeLenient behaves like Decode but degrades malformed content to an empty
// payload of the right kind. The error is still returned so callers can log it.
func DecodeLenient(kind Kind, content string) (Payload, error) {
	p, err := Decode(kind, content)
	if err == nil {
		return p, nil
	}
	if empty := Empty(kind); empty != nil {
		return empty, err
	}
	return nil, err
}

// Empty returns the zero payload for kind, or nil for unknown kinds.
func Empty(kind Kind) Payload {
	switch kind {
	case KindBanner:
		return Banner{}
	case KindPricing:
		return Plans(nil)
	case KindTestimonials:
		return Testimonials(nil)
	case KindProjects:
		return Projects(nil)
	case KindTextImage:
		return Blocks(nil)
	case KindFAQ:
		return FAQs(nil)
	case KindSlider:
		return Slides(nil)
	case KindContent:
		return Content{}
	case KindCustomHTML:
		return CustomHTML{}
	}
	return nil
}

// Encode serializes a payload into the grammar of its kind.
func Encode(p Payload) (string, error) {
	switch v := p.(type) {
	case Banner:
		return SerializeBanner(v), nil
	case Plans:
		return SerializePlans(v), nil
	case Testimonials:
		return SerializeTestimonials(v)
	case Projects:
		return SerializeProjects(v)
	case Blocks:
		return SerializeBlocks(v)
	case FAQs:
		return SerializeFAQs(v), nil
	case Slides:
		return SerializeSlides(v)
	case Content:
		return v.Body, nil
	case CustomHTML:
		return v.HTML, nil
	case nil:
		return "", fmt.Errorf("encode: nil payload")
	}
	return "", errs.NewUnsupportedSectionTypeError(fmt.Sprintf("%T", p))
}

type Upgraded struct {
	Content string
	Version int
	Changed bool
}

// Upgrade rewrites stored content into the current grammar of its kind.
// Legacy pipe documents of JSON kinds are detected unambiguously and rewritten
// whatever the version; the positional pricing migration only runs for rows
// older than CurrentVersion.
func Upgrade(kind Kind, content string, version int) (Upgraded, error) {
	out := Upgraded{Content: content, Version: max(version, CurrentVersion)}

	switch kind {
	case KindPricing:
		if version < CurrentVersion {
			out.Content = MigratePlans(content)
		}
	case KindTestimonials:
		items, migrated, err := ParseTestimonials(content)
		if err != nil {
			return Upgraded{Content: content, Version: version}, err
		}
		if migrated {
			if out.Content, err = SerializeTestimonials(items); err != nil {
				return Upgraded{Content: content, Version: version}, err
			}
		}
	case KindProjects:
		items, migrated, err := ParseProjects(content)
		if err != nil {
			return Upgraded{Content: content, Version: version}, err
		}
		if migrated {
			if out.Content, err = SerializeProjects(items); err != nil {
				return Upgraded{Content: content, Version: version}, err
			}
		}
	case KindTextImage:
		items, migrated, err := ParseBlocks(content)
		if err != nil {
			return Upgraded{Content: content, Version: version}, err
		}
		if migrated {
			if out.Content, err = SerializeBlocks(items); err != nil {
				return Upgraded{Content: content, Version: version}, err
			}
		}
	}

	out.Changed = out.Content != content || out.Version != version
	return out, nil
}
