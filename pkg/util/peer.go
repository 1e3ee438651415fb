package util

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	pb "github.com/hyperledger/fabric-protos-go/peer"
	"golang.org/x/sync/errgroup"
)

// EndorsePeers sends signed proposal to every endorser concurrently.
// Responses keep the order of endCli, a failed endorser leaves a nil slot
// and its error is collected into the returned error.
func EndorsePeers(ctx context.Context, signedProp *pb.SignedProposal, endCli ...pb.EndorserClient) ([]*pb.ProposalResponse, error) {
	responses := make([]*pb.ProposalResponse, len(endCli))
	errs := make([]error, len(endCli))

	var g errgroup.Group
	for i, cli := range endCli {
		i, cli := i, cli
		g.Go(func() error {
			resp, err := cli.ProcessProposal(ctx, signedProp)
			if err != nil {
				errs[i] = fmt.Errorf("process proposal on endorser %d: %w", i, err)
				return nil
			}
			responses[i] = resp
			return nil
		})
	}
	_ = g.Wait()

	var result *multierror.Error
	for _, err := range errs {
		if err != nil {
			result = multierror.Append(result, err)
		}
	}
	return responses, result.ErrorOrNil()
}
