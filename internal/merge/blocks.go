package merge

import (
	"durazubs/internal/ass"
)

// entry is one parsed body record.
type entry struct {
	line  int
	raw   string
	rec   ass.Record
	scene bool
}

// parseEntries parses every dialogue line of a track body. Other lines are
// skipped; parse failures are fatal and carry the track name.
func parseEntries(track string, body []string) ([]entry, error) {
	entries := make([]entry, 0, len(body))
	for idx, line := range body {
		if !ass.Default.IsDialogue(line) {
			continue
		}
		rec, err := ass.Parse(line)
		if err != nil {
			return nil, &TrackError{Track: track, Line: idx + 1, Err: err}
		}
		entries = append(entries, entry{
			line:  idx + 1,
			raw:   line,
			rec:   rec,
			scene: ass.Default.IsSceneRecord(rec),
		})
	}
	return entries, nil
}

// SceneBlock is a maximal run of consecutive scene records together with the
// nearest ordinary records around it. Previous and Next are nil at the track
// boundaries.
type SceneBlock struct {
	Lines    []string
	Records  []ass.Record
	Previous *ass.Record
	Next     *ass.Record
}

// BlockQueue is a FIFO of scene blocks in file order.
type BlockQueue struct {
	blocks []*SceneBlock
}

func (q *BlockQueue) Len() int { return len(q.blocks) }

// Peek returns the head block without removing it, or nil when empty.
func (q *BlockQueue) Peek() *SceneBlock {
	if len(q.blocks) == 0 {
		return nil
	}
	return q.blocks[0]
}

// Pop removes and returns the head block, or nil when empty.
func (q *BlockQueue) Pop() *SceneBlock {
	if len(q.blocks) == 0 {
		return nil
	}
	head := q.blocks[0]
	q.blocks = q.blocks[1:]
	return head
}

// PushFront returns a block to the head of the queue.
func (q *BlockQueue) PushFront(b *SceneBlock) {
	q.blocks = append([]*SceneBlock{b}, q.blocks...)
}

// Drain removes and returns every remaining block.
func (q *BlockQueue) Drain() []*SceneBlock {
	rest := q.blocks
	q.blocks = nil
	return rest
}

// IndexBlocks groups the scene records of a track into blocks. Lines that are
// not dialogue records are ignored.
func IndexBlocks(lines []string) (*BlockQueue, error) {
	entries, err := parseEntries("", lines)
	if err != nil {
		return nil, err
	}
	return indexEntries(entries), nil
}

func indexEntries(entries []entry) *BlockQueue {
	q := &BlockQueue{}
	var current *SceneBlock
	var previous *ass.Record

	for i := range entries {
		e := &entries[i]
		if e.scene {
			if current == nil {
				current = &SceneBlock{Previous: previous}
			}
			current.Lines = append(current.Lines, e.raw)
			current.Records = append(current.Records, e.rec)
			continue
		}
		rec := e.rec
		if current != nil {
			current.Next = &rec
			q.blocks = append(q.blocks, current)
			current = nil
		}
		previous = &rec
	}
	if current != nil {
		q.blocks = append(q.blocks, current)
	}
	return q
}
