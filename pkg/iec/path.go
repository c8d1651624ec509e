package iec

import "fmt"

// PathToRoot returns the frame chain from f up to and including the
// fixed reference frame, following tree parent links.
//
// Every declared frame resolves; the error paths guard against a frame
// outside the declared set and against a malformed catalog in which a
// parent chain never reaches the root.
func PathToRoot(f Frame) ([]Frame, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%v: %w", f, ErrUnknownFrame)
	}

	path := make([]Frame, 0, frameCount)
	path = append(path, f)
	// The hop bound makes an accidental cycle in the catalog surface as
	// an error instead of an endless walk.
	for hops := 0; path[len(path)-1] != Root; hops++ {
		if hops > int(frameCount) {
			return nil, fmt.Errorf("%v: %w", f, ErrUnreachableFrame)
		}
		parent, ok := parents[path[len(path)-1]]
		if !ok {
			return nil, fmt.Errorf("%v: %w", f, ErrUnreachableFrame)
		}
		path = append(path, parent)
	}
	return path, nil
}

// PathFromRoot returns the frame chain from the fixed reference frame
// down to and including f. It is the reverse of PathToRoot.
func PathFromRoot(f Frame) ([]Frame, error) {
	path, err := PathToRoot(f)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}
