package awsd

import (
	stderrors "errors"

	"github.com/aws/smithy-go"

	"ec2ctl/errors"
)

// Classify maps an SDK error onto the tool's error taxonomy. The provider's own
// message is kept as the CustomError message so callers can print it verbatim.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.TypeOf(err) != "" {
		return err
	}

	var apiErr smithy.APIError
	if stderrors.As(err, &apiErr) {
		context := map[string]interface{}{
			"code": apiErr.ErrorCode(),
		}
		switch apiErr.ErrorCode() {
		case "DryRunOperation":
			return errors.New(errors.ErrDryRun, apiErr.ErrorMessage(), context, err)
		case "UnauthorizedOperation", "AuthFailure":
			return errors.New(errors.ErrUnauthorized, apiErr.ErrorMessage(), context, err)
		}
		return errors.New(errors.ErrAWSAPI, err.Error(), context, err)
	}

	return errors.New(errors.ErrAWSAPI, err.Error(), nil, err)
}
