package contracts

// DonationABI is the ABI of the BAMDonation contract.
const DonationABI = `[
	{
		"inputs": [{"internalType": "string", "name": "_message", "type": "string"}],
		"name": "donate",
		"outputs": [],
		"stateMutability": "payable",
		"type": "function"
	},
	{
		"inputs": [
			{"internalType": "address", "name": "_token",   "type": "address"},
			{"internalType": "uint256", "name": "_amount",  "type": "uint256"},
			{"internalType": "string",  "name": "_message", "type": "string"}
		],
		"name": "donateToken",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"inputs": [],
		"name": "getAllDonations",
		"outputs": [
			{
				"components": [
					{"internalType": "address",                   "name": "donor",        "type": "address"},
					{"internalType": "uint256",                   "name": "amount",       "type": "uint256"},
					{"internalType": "enum BAMDonation.AssetType", "name": "assetType",    "type": "uint8"},
					{"internalType": "address",                   "name": "tokenAddress", "type": "address"},
					{"internalType": "string",                    "name": "message",      "type": "string"},
					{"internalType": "uint256",                   "name": "timestamp",    "type": "uint256"}
				],
				"internalType": "struct BAMDonation.Donation[]",
				"name": "",
				"type": "tuple[]"
			}
		],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"inputs": [],
		"name": "getNativeBalance",
		"outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"inputs": [{"internalType": "address", "name": "_token", "type": "address"}],
		"name": "getTokenBalance",
		"outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"anonymous": false,
		"inputs": [
			{"indexed": true,  "internalType": "address",                   "name": "donor",        "type": "address"},
			{"indexed": false, "internalType": "uint256",                   "name": "amount",       "type": "uint256"},
			{"indexed": false, "internalType": "enum BAMDonation.AssetType", "name": "assetType",    "type": "uint8"},
			{"indexed": false, "internalType": "address",                   "name": "tokenAddress", "type": "address"},
			{"indexed": false, "internalType": "string",                    "name": "message",      "type": "string"}
		],
		"name": "DonationReceived",
		"type": "event"
	}
]`

// NFTTrackerABI is the ABI of the BAMDonationNFTTracker contract.
const NFTTrackerABI = `[
	{
		"inputs": [{"internalType": "uint256", "name": "_donationIndex", "type": "uint256"}],
		"name": "claimNFT",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"inputs": [{"internalType": "address", "name": "_donor", "type": "address"}],
		"name": "getDonationIndices",
		"outputs": [{"internalType": "uint256[]", "name": "", "type": "uint256[]"}],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"inputs": [{"internalType": "uint256", "name": "_donationIndex", "type": "uint256"}],
		"name": "isDonationClaimed",
		"outputs": [{"internalType": "bool", "name": "", "type": "bool"}],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"anonymous": false,
		"inputs": [
			{"indexed": true,  "internalType": "address", "name": "donor",         "type": "address"},
			{"indexed": true,  "internalType": "uint256", "name": "donationIndex", "type": "uint256"}
		],
		"name": "NFTClaimed",
		"type": "event"
	}
]`

// NFTABI is the ABI of the BAMDonationNFT contract.
const NFTABI = `[
	{
		"inputs": [{"internalType": "address", "name": "_user", "type": "address"}],
		"name": "hasReceivedNFT",
		"outputs": [{"internalType": "bool", "name": "", "type": "bool"}],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"inputs": [{"internalType": "address", "name": "owner", "type": "address"}],
		"name": "balanceOf",
		"outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
		"stateMutability": "view",
		"type": "function"
	}
]`

// ERC20ABI is the subset of the fungible-token interface the donation flows use.
const ERC20ABI = `[
	{
		"inputs": [
			{"internalType": "address", "name": "spender", "type": "address"},
			{"internalType": "uint256", "name": "amount",  "type": "uint256"}
		],
		"name": "approve",
		"outputs": [{"internalType": "bool", "name": "", "type": "bool"}],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"inputs": [
			{"internalType": "address", "name": "owner",   "type": "address"},
			{"internalType": "address", "name": "spender", "type": "address"}
		],
		"name": "allowance",
		"outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"inputs": [{"internalType": "address", "name": "account", "type": "address"}],
		"name": "balanceOf",
		"outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"inputs": [],
		"name": "decimals",
		"outputs": [{"internalType": "uint8", "name": "", "type": "uint8"}],
		"stateMutability": "view",
		"type": "function"
	}
]`
