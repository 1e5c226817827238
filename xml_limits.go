package langtable

import (
	"cmp"
	"fmt"

	"github.com/jacoelho/langtable/pkg/xmlstream"
)

const (
	defaultXMLMaxDepth     = 256
	defaultXMLMaxTokenSize = 4 << 20
)

type xmlParseLimits struct {
	maxDepth     int
	maxTokenSize int
}

func resolveXMLParseLimits(maxDepth, maxTokenSize int) (xmlParseLimits, error) {
	if maxDepth < 0 {
		return xmlParseLimits{}, fmt.Errorf("xml max depth must be >= 0")
	}
	if maxTokenSize < 0 {
		return xmlParseLimits{}, fmt.Errorf("xml max token size must be >= 0")
	}
	return xmlParseLimits{
		maxDepth:     defaultXMLLimit(maxDepth, defaultXMLMaxDepth),
		maxTokenSize: defaultXMLLimit(maxTokenSize, defaultXMLMaxTokenSize),
	}, nil
}

func (l xmlParseLimits) options() []xmlstream.Option {
	return []xmlstream.Option{
		xmlstream.MaxDepth(defaultXMLLimit(l.maxDepth, defaultXMLMaxDepth)),
		xmlstream.MaxTokenSize(defaultXMLLimit(l.maxTokenSize, defaultXMLMaxTokenSize)),
	}
}

func defaultXMLLimit(value, fallback int) int {
	return cmp.Or(value, fallback)
}
