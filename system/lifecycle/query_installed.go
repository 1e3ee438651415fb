package lifecycle

import (
	"context"
	"fmt"

	"github.com/golang/protobuf/proto" //nolint:staticcheck
	lb "github.com/hyperledger/fabric-protos-go/peer/lifecycle"
)

const queryInstalledFunc = "QueryInstalledChaincodes"

func (c *cli) QueryInstalled(ctx context.Context) ([]InstalledChaincode, error) {
	payload, err := c.query(ctx, "", queryInstalledFunc, &lb.QueryInstalledChaincodesArgs{})
	if err != nil {
		return nil, fmt.Errorf("query installed: %w", err)
	}
	var res lb.QueryInstalledChaincodesResult
	if err = proto.Unmarshal(payload, &res); err != nil {
		return nil, fmt.Errorf("unmarshal payload: %w", err)
	}

	// populate result from chaincode response
	result := make([]InstalledChaincode, 0, len(res.InstalledChaincodes))
	for _, cc := range res.InstalledChaincodes {
		result = append(result, InstalledChaincode{PackageID: cc.PackageId, Label: cc.Label})
	}

	return result, nil
}
