package services

import (
	"strings"

	"legal-info/models"
)

// Leaf ist ein Blatt des Baums zusammen mit seinem Platz im Eltern-Container.
// Über Replace wird der Wert direkt im Mapping bzw. in der Sequence umgeschrieben.
type Leaf struct {
	// Key ist der Mapping-Key, unter dem das Blatt (oder seine Sequence) hängt.
	Key string

	parent *models.Mapping
	seq    *models.Sequence
	index  int
}

// Value liefert den aktuellen Wert aus dem Container, nicht eine Kopie vom Besuchszeitpunkt.
func (l *Leaf) Value() models.Record {
	if l.seq != nil {
		return l.seq.Items[l.index]
	}
	v, _ := l.parent.Get(l.Key)
	return v
}

// Text liefert die textuelle Form des Blatts; isString ist false für Zahlen, bool und null.
func (l *Leaf) Text() (text string, isString bool) {
	s, ok := l.Value().(models.Scalar)
	if !ok {
		return "", false
	}
	return s.Text()
}

// Replace ersetzt alle Vorkommen von old im aktuellen String-Wert durch repl.
// Nicht-String-Blätter werden nie umgeschrieben. Gibt zurück, ob sich etwas geändert hat.
func (l *Leaf) Replace(old, repl string) bool {
	text, isString := l.Text()
	if !isString || old == "" || !strings.Contains(text, old) {
		return false
	}
	updated := strings.ReplaceAll(text, old, repl)
	if updated == text {
		return false
	}
	l.set(models.Str(updated))
	return true
}

func (l *Leaf) set(v models.Record) {
	if l.seq != nil {
		l.seq.Items[l.index] = v
		return
	}
	l.parent.Set(l.Key, v)
}

// Walk besucht jedes Blatt unterhalb von root in Dokumentreihenfolge. Sequence-Elemente
// werden einzeln besucht, verschachtelte Mappings und Sequences rekursiv durchlaufen.
// Zyklen gibt es in deserialisierten Dokumenten nicht und werden nicht erkannt.
func Walk(root *models.Mapping, visit func(*Leaf)) {
	for _, key := range root.Keys() {
		value, _ := root.Get(key)
		switch v := value.(type) {
		case *models.Mapping:
			Walk(v, visit)
		case *models.Sequence:
			walkSequence(root, key, v, visit)
		default:
			visit(&Leaf{Key: key, parent: root})
		}
	}
}

func walkSequence(parent *models.Mapping, key string, seq *models.Sequence, visit func(*Leaf)) {
	for i := range seq.Items {
		switch item := seq.Items[i].(type) {
		case *models.Mapping:
			Walk(item, visit)
		case *models.Sequence:
			walkSequence(parent, key, item, visit)
		default:
			visit(&Leaf{Key: key, parent: parent, seq: seq, index: i})
		}
	}
}
