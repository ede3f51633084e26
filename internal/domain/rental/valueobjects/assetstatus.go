package valueobjects

// AssetStatus mirrors the availability states of the external asset
// module as seen through the AssetStatusPort.
type AssetStatus string

const (
	AssetAvailable        AssetStatus = "available"
	AssetDeployed         AssetStatus = "deployed"
	AssetRented           AssetStatus = "rented"
	AssetUnderMaintenance AssetStatus = "under_maintenance"
	AssetRetired          AssetStatus = "retired"
)

func (s AssetStatus) String() string {
	return string(s)
}

// DispatchableStatuses are the asset source states from which a rental
// dispatch may claim the asset.
var DispatchableStatuses = []AssetStatus{AssetAvailable, AssetDeployed}

var ValidAssetStatuses = map[AssetStatus]bool{
	AssetAvailable:        true,
	AssetDeployed:         true,
	AssetRented:           true,
	AssetUnderMaintenance: true,
	AssetRetired:          true,
}
