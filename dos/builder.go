package dos

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/jsphweid/dosrevive/constants"
	"github.com/jsphweid/dosrevive/keyconfig"
	"github.com/jsphweid/dosrevive/model"
	"github.com/jsphweid/dosrevive/util"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// builder collects decoded fields and remembers which optional ones were
// set. Page bodies stay raw until build because lane names depend on the
// key kind, which may be declared after them.
type builder struct {
	keys        *keyconfig.KeyConfig
	defaultKind string

	keyKind    string
	keyKindSet bool

	blankFrame    int
	blankFrameSet bool

	scoreNumber    int
	scoreNumberSet bool

	timings    []model.TimingSegment
	timingsSet bool

	pages     map[int]string
	blockNums map[int]int
	seen      map[string]bool
}

func newBuilder(keys *keyconfig.KeyConfig, defaultKind string) *builder {
	return &builder{
		keys:        keys,
		defaultKind: defaultKind,
		pages:       make(map[int]string),
		blockNums:   make(map[int]int),
		seen:        make(map[string]bool),
	}
}

func parseInt(s string, min int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, invalid("%q is not an integer", s)
	}
	if n < min {
		return 0, invalid("%d is below %d", n, min)
	}
	return n, nil
}

func (b *builder) apply(f field) error {
	if b.seen[f.key()] {
		return invalid("duplicate field %v", f.key())
	}
	b.seen[f.key()] = true

	var err error
	switch f.kind {
	case fieldVersion:
		// informational only
	case fieldKeyKind:
		b.keyKind, b.keyKindSet = f.value, true
	case fieldBlankFrame:
		b.blankFrame, err = parseInt(f.value, 0)
		b.blankFrameSet = true
	case fieldScoreNumber:
		b.scoreNumber, err = parseInt(f.value, 1)
		b.scoreNumberSet = true
	case fieldTimings:
		b.timings, err = parseTimings(f.value)
		b.timingsSet = true
	case fieldPage:
		b.pages[f.index] = f.value
	case fieldPageBlockNum:
		b.blockNums[f.index], err = parseBlockNum(f.value)
	}
	return errors.Wrapf(err, "field %s", f.label)
}

// parseBlockNum reads a page's block count. Pages may be shorter than the
// standard 8 blocks, never longer.
func parseBlockNum(s string) (int, error) {
	n, err := parseInt(s, 1)
	if err != nil {
		return 0, err
	}
	if n > constants.DefaultBlockNum {
		return 0, invalid("block count %d exceeds %d", n, constants.DefaultBlockNum)
	}
	return n, nil
}

// parseTimings reads "label,start,bpm" entries joined by "/".
func parseTimings(value string) ([]model.TimingSegment, error) {
	entries := splitList(value, "/")
	if len(entries) == 0 {
		return nil, invalid("no timing segments")
	}

	labels := make(map[int]bool)
	res := make([]model.TimingSegment, 0, len(entries))
	for _, entry := range entries {
		parts := strings.Split(entry, ",")
		if len(parts) != 3 {
			return nil, invalid("timing %q needs label, start and bpm", entry)
		}
		label, err := parseInt(strings.TrimSpace(parts[0]), 1)
		if err != nil {
			return nil, errors.Wrapf(err, "timing %q label", entry)
		}
		start, err := parseInt(strings.TrimSpace(parts[1]), 0)
		if err != nil {
			return nil, errors.Wrapf(err, "timing %q start", entry)
		}
		bpm, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if err != nil || math.IsNaN(bpm) || math.IsInf(bpm, 0) || bpm <= 0 {
			return nil, invalid("timing %q has no usable bpm", entry)
		}
		if labels[label] {
			return nil, invalid("timing label %d used twice", label)
		}
		labels[label] = true
		res = append(res, model.TimingSegment{Label: label, StartPosition: start, Bpm: bpm})
	}

	sort.Slice(res, func(i, j int) bool {
		return res[i].Label < res[j].Label
	})
	return res, nil
}

func parsePosition(s string, limit int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, invalid("position %q is not an integer", s)
	}
	if n < 0 || n > limit {
		return 0, invalid("position %d is outside the page", n)
	}
	return n, nil
}

// fillPage reads "lane:item,item" groups joined by "/". An item is a note
// position or a "start-end" freeze.
func fillPage(p *model.PageScore, layout keyconfig.Layout, value string) error {
	size := p.Size()
	for _, group := range splitList(value, "/") {
		laneToken, items, found := strings.Cut(group, ":")
		if !found {
			return invalid("lane group %q has no lane", group)
		}
		lane, ok := layout.LaneIndex(strings.TrimSpace(laneToken))
		if !ok {
			return invalid("unknown lane %q", laneToken)
		}

		for _, item := range splitList(items, ",") {
			startText, endText, isFreeze := strings.Cut(item, "-")
			if !isFreeze || startText == "" {
				pos, err := parsePosition(item, size-1)
				if err != nil {
					return err
				}
				p.Notes[lane] = append(p.Notes[lane], pos)
				continue
			}

			start, err := parsePosition(strings.TrimSpace(startText), size-1)
			if err != nil {
				return err
			}
			end, err := parsePosition(strings.TrimSpace(endText), size)
			if err != nil {
				return err
			}
			if end <= start {
				return invalid("freeze %q ends before it starts", item)
			}
			p.Freezes[lane] = append(p.Freezes[lane], model.Freeze{Start: start, End: end})
		}
	}

	for lane := range p.Notes {
		slices.Sort(p.Notes[lane])
		p.Notes[lane] = slices.Compact(p.Notes[lane])

		freezes := p.Freezes[lane]
		sort.Slice(freezes, func(i, j int) bool {
			if freezes[i].Start != freezes[j].Start {
				return freezes[i].Start < freezes[j].Start
			}
			return freezes[i].End < freezes[j].End
		})
		p.Freezes[lane] = slices.Compact(freezes)
	}
	return nil
}

func (b *builder) layout() (keyconfig.Layout, error) {
	kind := b.defaultKind
	if b.keyKindSet {
		kind = b.keyKind
	}
	if kind == "" {
		return b.keys.DefaultLayout(), nil
	}
	l, ok := b.keys.Layout(kind)
	if !ok {
		return keyconfig.Layout{}, invalid("unknown key kind %q", kind)
	}
	return l, nil
}

func (b *builder) pageCount() int {
	indexes := append(maps.Keys(b.pages), maps.Keys(b.blockNums)...)
	if len(indexes) == 0 {
		return 1
	}
	return util.Max(indexes...) + 1
}

func (b *builder) build() (*model.Chart, error) {
	if !b.timingsSet {
		return nil, invalid("missing timings")
	}
	if slices.IndexFunc(b.timings, func(t model.TimingSegment) bool { return t.StartPosition == 0 }) < 0 {
		return nil, invalid("no timing segment starts at 0")
	}
	layout, err := b.layout()
	if err != nil {
		return nil, err
	}

	chart := &model.Chart{
		BlankFrame:  constants.DefaultBlankFrame,
		Timings:     b.timings,
		ScoreNumber: constants.DefaultScoreNumber,
		Pages:       make([]model.PageScore, b.pageCount()),
	}
	if b.blankFrameSet {
		chart.BlankFrame = b.blankFrame
	}
	if b.scoreNumberSet {
		chart.ScoreNumber = b.scoreNumber
	}

	for i := range chart.Pages {
		p := model.NewPageScore(layout.Num())
		p.BlockNum = b.blockNums[i]
		if err := fillPage(&p, layout, b.pages[i]); err != nil {
			return nil, errors.Wrapf(err, "page %d", i+1)
		}
		chart.Pages[i] = p
	}
	return chart, nil
}
