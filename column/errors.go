package column

import (
	"github.com/fayez-kaabi/json-ultra-compress/errs"
)

func errUnknownTag(tag any) error {
	return errs.Wrap(errs.ErrFrameCorrupt, "column: unknown type tag %v", tag)
}

func errTruncatedColumn() error {
	return errs.Wrap(errs.ErrFrameCorrupt, "column: truncated payload")
}
