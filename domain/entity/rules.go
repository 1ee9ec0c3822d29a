package entity

import (
	"sync"

	"github.com/thoas/go-funk"
	"golang.org/x/xerrors"
)

var (
	// ErrIndexOutOfRange is returned by DeleteByIndex when the index is not in the store.
	ErrIndexOutOfRange = xerrors.New("index out of range")
)

// Rules is the ordered rule store. The order is also the evaluation order.
type Rules struct {
	mutex sync.RWMutex
	list  []Rule
}

func NewRules(rules []Rule) *Rules {
	list := make([]Rule, len(rules))
	copy(list, rules)
	return &Rules{
		mutex: sync.RWMutex{},
		list:  list,
	}
}

func (r *Rules) Len() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return len(r.list)
}

// List returns a snapshot of the rules in their current order.
func (r *Rules) List() []Rule {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	list := make([]Rule, len(r.list))
	copy(list, r.list)
	return list
}

func (r *Rules) Add(rule Rule) {
	r.mutex.Lock()
	r.list = append(r.list, rule)
	r.mutex.Unlock()
}

// DeleteByIndex removes the rule at index and shifts the following rules down by one.
func (r *Rules) DeleteByIndex(index int) (removed Rule, err error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if index < 0 || index >= len(r.list) {
		err = xerrors.Errorf("failed to delete rule %d of %d: %w", index, len(r.list), ErrIndexOutOfRange)
		return
	}

	removed = r.list[index]
	list := make([]Rule, 0, len(r.list)-1)
	list = append(list, r.list[:index]...)
	r.list = append(list, r.list[index+1:]...)
	return
}

// DeleteByProtocol removes the rules tagged with exactly p. ProtocolAll only removes rules tagged All.
func (r *Rules) DeleteByProtocol(p Protocol) []Rule {
	return r.deleteWhere(func(rule Rule) bool {
		return rule.Protocol == p
	})
}

func (r *Rules) DeleteBySourceIP(ip string) []Rule {
	return r.deleteWhere(func(rule Rule) bool {
		return rule.SourceIP == ip
	})
}

func (r *Rules) DeleteByDestinationIP(ip string) []Rule {
	return r.deleteWhere(func(rule Rule) bool {
		return rule.DestinationIP == ip
	})
}

// DeleteByPortRange removes the rules whose range is exactly start-end, overlapping ranges are kept.
func (r *Rules) DeleteByPortRange(start, end uint32) []Rule {
	return r.deleteWhere(func(rule Rule) bool {
		return rule.PortRange.Start == start && rule.PortRange.End == end
	})
}

// deleteWhere partitions the store and returns the removed rules in store order.
func (r *Rules) deleteWhere(match func(rule Rule) bool) []Rule {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	removed := funk.Filter(r.list, match).([]Rule)
	if len(removed) == 0 {
		return removed
	}

	r.list = funk.Filter(r.list, func(rule Rule) bool {
		return !match(rule)
	}).([]Rule)
	return removed
}
