// Copyright © 2025 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package msgs

import (
	"fmt"
	"strings"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"golang.org/x/text/language"
)

const chainTrackPrefix = "CT01"

var registered = false
var ffe = func(key, translation string, statusHint ...int) i18n.ErrorMessageKey {
	if !registered {
		i18n.RegisterPrefix(chainTrackPrefix, "ChainTrack Ledger Client")
		registered = true
	}
	if !strings.HasPrefix(key, chainTrackPrefix) {
		panic(fmt.Errorf("must have prefix '%s': %s", chainTrackPrefix, key))
	}
	return i18n.FFE(language.AmericanEnglish, key, translation, statusHint...)
}

var (

	// Types CT0100XX
	MsgContextCanceled          = ffe("CT010000", "Context canceled")
	MsgTypesInvalidRole         = ffe("CT010001", "Invalid role '%s'")
	MsgTypesRoleTerminal        = ffe("CT010002", "Role %s has no successor in the cascade")
	MsgTypesInvalidItemType     = ffe("CT010003", "Invalid item type '%s'")
	MsgTypesRequiredField       = ffe("CT010004", "Required field '%s' missing", 400)
	MsgTypesInvalidImageURL     = ffe("CT010005", "Item image must be an http(s) URL: %q", 400)
	MsgTypesDatesOutOfOrder     = ffe("CT010006", "Expiry date %d is before manufactured date %d", 400)
	MsgTypesInvalidAccountID    = ffe("CT010007", "Invalid account identifier '%s'", 400)
	MsgTypesEmptyCustodyRecord  = ffe("CT010008", "Custody record is empty")
	MsgTypesCascadeBroken       = ffe("CT010009", "Custody record breaks the role cascade at position %d (%s after %s)")
	MsgTypesFirstHolderNotMaker = ffe("CT010010", "First custody entry must be the manufacturer (found %s)")

	// Config CT0101XX
	MsgConfigFileMissing    = ffe("CT010100", "Config file not found: %s")
	MsgConfigFileReadError  = ffe("CT010101", "Failed to read config file %s: %s")
	MsgConfigFileParseError = ffe("CT010102", "Failed to parse config file: %s")
	MsgConfigInvalidAddress = ffe("CT010103", "Invalid contract address '%s'")

	// Ledger gateway CT0102XX
	MsgLedgerURLMissing             = ffe("CT010200", "Ledger JSON-RPC URL missing in configuration")
	MsgLedgerInvalidURL             = ffe("CT010201", "Invalid ledger JSON-RPC URL '%s'")
	MsgLedgerChainIDFailed          = ffe("CT010202", "Failed to query the chain ID of the ledger")
	MsgLedgerContractAddressMissing = ffe("CT010203", "Contract address missing in configuration")
	MsgLedgerCallReverted           = ffe("CT010204", "Call reverted: %s")
	MsgLedgerReceiptNotAvailable    = ffe("CT010205", "Receipt not available for transaction %s")
	MsgLedgerFinalityTimeout        = ffe("CT010206", "Gave up waiting for finality of transaction %s")
	MsgLedgerReturnDataInvalid      = ffe("CT010207", "Unable to decode return data of '%s'")
	MsgLedgerInvalidInputs          = ffe("CT010208", "Unable to build call data for '%s'")

	// Submission pipeline CT0103XX
	MsgPipelineEstimationFailed  = ffe("CT010300", "Fee budget estimation failed for '%s'")
	MsgPipelineSubmitRejected    = ffe("CT010301", "Ledger rejected submission of '%s' (reason=%s)")
	MsgPipelineBudgetExhausted   = ffe("CT010302", "Fee budget still too low for '%s' after %d submissions")
	MsgPipelineExecutionReverted = ffe("CT010303", "Transaction %s failed on the ledger: %s")
	MsgPipelineFinalityTimeout   = ffe("CT010304", "Transaction %s submitted but not finalized within %s")

	// Role-cascade registry CT0104XX
	MsgRegistryCallerUnknown      = ffe("CT010400", "Caller %s is not a registered party", 401)
	MsgRegistryCallerTerminalRole = ffe("CT010401", "A %s may not register new parties", 403)
	MsgRegistryRoleCascade        = ffe("CT010402", "A %s may only register a %s (requested %s)", 403)
	MsgRegistryDuplicateAccount   = ffe("CT010403", "Party %s is already registered", 409)

	// Custody ledger CT0105XX
	MsgCustodyNotManufacturer       = ffe("CT010500", "Only a manufacturer may create items (caller role %s)", 403)
	MsgCustodyDuplicateItem         = ffe("CT010501", "An item with barcode %s already exists", 409)
	MsgCustodyItemNotFound          = ffe("CT010502", "No item found with barcode %s", 404)
	MsgCustodyNotCurrentHolder      = ffe("CT010503", "Caller %s is not the current holder of item %s", 403)
	MsgCustodyTerminalHolder        = ffe("CT010504", "Item %s is held by a customer and can no longer be transferred", 409)
	MsgCustodyInvalidSuccessorRole  = ffe("CT010505", "Buyer %s has role %s; a %s may only sell to a %s", 403)
	MsgCustodyBuyerUnknown          = ffe("CT010506", "Buyer %s is not a registered party", 404)
	MsgCustodyTransferTimestampZero = ffe("CT010507", "Transfer timestamp must be set", 400)
)
