package copywriter

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var prefixToTemplate = map[string]TemplateID{
	"object":  TemplateObject,
	"detail":  TemplateDetail,
	"process": TemplateProcess,
	"story":   TemplateStory,
}

// TemplateForFilename infers the template bucket from the filename's
// category prefix (the part before the first underscore).
func TemplateForFilename(path string) (TemplateID, bool) {
	prefix, err := inferPrefix(path)
	if err != nil {
		return "", false
	}
	tid, ok := prefixToTemplate[prefix]
	return tid, ok
}

func inferPrefix(path string) (string, error) {
	base := filepath.Base(path)
	stem := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
	if !strings.Contains(stem, "_") {
		return "", fmt.Errorf("%w: filename must start with a category prefix followed by '_' (e.g. object_vase.jpg), got %s", ErrUnknownPrefix, base)
	}
	return strings.TrimSpace(strings.SplitN(stem, "_", 2)[0]), nil
}

// BucketImagesByPrefix groups candidate images by template. Every path
// must exist (checked before any bucketing) and carry a recognized
// prefix. Buckets are sorted lexicographically for determinism.
func BucketImagesByPrefix(paths []string) (map[TemplateID][]string, error) {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("%w: image %s", ErrNotFound, p)
		}
	}
	buckets := make(map[TemplateID][]string)
	for _, p := range paths {
		prefix, err := inferPrefix(p)
		if err != nil {
			return nil, err
		}
		tid, ok := prefixToTemplate[prefix]
		if !ok {
			return nil, fmt.Errorf("%w: %q in %s (use object_, detail_, process_ or story_)", ErrUnknownPrefix, prefix, filepath.Base(p))
		}
		buckets[tid] = append(buckets[tid], p)
	}
	for tid := range buckets {
		sort.Strings(buckets[tid])
	}
	return buckets, nil
}

// SelectImagesForSchedule assigns one image per slot by consuming bucket
// fronts: own template bucket first, then (unless strict) the fallback
// bucket, then any non-empty bucket in template-id order. It works on
// local copies and never mutates the caller's buckets.
func SelectImagesForSchedule(schedule []ScheduleSlot, buckets map[TemplateID][]string, fallback TemplateID, strict bool) ([]string, error) {
	local := make(map[TemplateID][]string, len(buckets))
	for tid, paths := range buckets {
		local[tid] = append([]string(nil), paths...)
	}

	popFront := func(tid TemplateID) (string, bool) {
		q := local[tid]
		if len(q) == 0 {
			return "", false
		}
		local[tid] = q[1:]
		return q[0], true
	}
	popAny := func() (string, bool) {
		tids := make([]TemplateID, 0, len(local))
		for tid := range local {
			tids = append(tids, tid)
		}
		sort.Slice(tids, func(i, j int) bool { return tids[i] < tids[j] })
		for _, tid := range tids {
			if p, ok := popFront(tid); ok {
				return p, true
			}
		}
		return "", false
	}

	chosen := make([]string, 0, len(schedule))
	for _, slot := range schedule {
		if p, ok := popFront(slot.TemplateID); ok {
			chosen = append(chosen, p)
			continue
		}
		if strict {
			return nil, fmt.Errorf("%w: no %s images left for day %s", ErrMissingImages, slot.TemplateID, slot.DayName)
		}
		if p, ok := popFront(fallback); ok {
			chosen = append(chosen, p)
			continue
		}
		p, ok := popAny()
		if !ok {
			return nil, ErrExhausted
		}
		chosen = append(chosen, p)
	}
	return chosen, nil
}
