package index

import (
	"sync"

	"github.com/uol/logh"

	"github.com/solrkit/solrkit/lib/constants"
)

//
// Change driven reindexing. The host application reports item lifecycle
// events here, connected handlers keep the index in sync.
//

// RelationAction - the kind of change on a relation between items
type RelationAction string

const (
	// RelationAdded - items were added to a relation
	RelationAdded RelationAction = "added"

	// RelationRemoved - items were removed from a relation
	RelationRemoved RelationAction = "removed"

	// RelationCleared - a relation was cleared
	RelationCleared RelationAction = "cleared"
)

const (
	cFuncSaved           string = "Saved"
	cFuncDeleted         string = "Deleted"
	cFuncRelationChanged string = "RelationChanged"
)

// SignalHandler - reindexes items as lifecycle events arrive. Events are
// ignored until Connect is called, and again after Disconnect.
type SignalHandler struct {
	indexer   *Indexer
	logger    *logh.ContextualLogger
	mutex     sync.RWMutex
	connected bool
}

// NewSignalHandler - creates a disconnected signal handler
func NewSignalHandler(indexer *Indexer) *SignalHandler {

	return &SignalHandler{
		indexer: indexer,
		logger:  logh.CreateContextualLogger(constants.StringsPKG, cPackage),
	}
}

// Connect - starts reacting to events
func (s *SignalHandler) Connect() {

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.connected = true
}

// Disconnect - stops reacting to events
func (s *SignalHandler) Disconnect() {

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.connected = false
}

// Connected - reports whether events are being handled
func (s *SignalHandler) Connected() bool {

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.connected
}

// Saved - reindexes an item after it was created or updated
func (s *SignalHandler) Saved(item Indexable) {

	if !s.Connected() {
		return
	}

	if logh.DebugEnabled {
		s.logger.Debug().Str(constants.StringsFunc, cFuncSaved).
			Msgf("indexing saved item: %s", item.IndexID())
	}

	if gerr := s.indexer.Index(item); gerr != nil {
		if logh.ErrorEnabled {
			s.logger.Error().Str(constants.StringsFunc, cFuncSaved).Err(gerr).
				Msgf("error indexing item: %s", item.IndexID())
		}
	}
}

// Deleted - removes an item from the index after it was deleted
func (s *SignalHandler) Deleted(item Indexable) {

	if !s.Connected() {
		return
	}

	if logh.DebugEnabled {
		s.logger.Debug().Str(constants.StringsFunc, cFuncDeleted).
			Msgf("removing deleted item: %s", item.IndexID())
	}

	if gerr := s.indexer.Remove(item); gerr != nil {
		if logh.ErrorEnabled {
			s.logger.Error().Str(constants.StringsFunc, cFuncDeleted).Err(gerr).
				Msgf("error removing item: %s", item.IndexID())
		}
	}
}

// RelationChanged - reindexes an item after one of its relations changed
func (s *SignalHandler) RelationChanged(item Indexable, action RelationAction) {

	switch action {
	case RelationAdded, RelationRemoved, RelationCleared:
	default:
		return
	}

	if !s.Connected() {
		return
	}

	if logh.DebugEnabled {
		s.logger.Debug().Str(constants.StringsFunc, cFuncRelationChanged).
			Msgf("indexing item after relation change (%s): %s", action, item.IndexID())
	}

	if gerr := s.indexer.Index(item); gerr != nil {
		if logh.ErrorEnabled {
			s.logger.Error().Str(constants.StringsFunc, cFuncRelationChanged).Err(gerr).
				Msgf("error indexing item: %s", item.IndexID())
		}
	}
}
