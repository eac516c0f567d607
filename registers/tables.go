package registers

// macRegisters lists the memory mapped registers of the RT2870/RT3070 MAC.
// Opaque registers carry no fields.
var macRegisters = []Register{
	{Offset: 0x0200, Name: "INT_STATUS"},
	{Offset: 0x0204, Name: "INT_MASK"},
	{Offset: 0x0208, Name: "WPDMA_GLO_CFG", Fields: []Field{
		{31, 16, "Reserved"},
		{15, 8, "HDR_SEG_LEN"},
		{7, 7, "BIG_ENDIAN"},
		{6, 6, "TX_WB_DDONE"},
		{5, 4, "WPDMA_BT_SIZE"},
		{3, 3, "RX_DMA_BUSY"},
		{2, 2, "RX_DMA_EN"},
		{1, 1, "TX_DMA_BUSY"},
		{0, 0, "TX_DMA_EN"},
	}},
	{Offset: 0x020c, Name: "WPDMA_RST_IDX"},
	{Offset: 0x0210, Name: "DELAY_INT_CFG"},
	{Offset: 0x0214, Name: "WMM_AIFSN_CFG"},
	{Offset: 0x0218, Name: "WMM_CWMIN_CFG"},
	{Offset: 0x021c, Name: "WMM_CWMAX_CFG"},
	{Offset: 0x0220, Name: "WMM_TXOP0_CFG"},
	{Offset: 0x0224, Name: "WMM_TXOP1_CFG"},
	{Offset: 0x0228, Name: "GPIO_CTRL"},
	{Offset: 0x022c, Name: "MCU_CMD_REG"},
	{Offset: 0x0230, Name: "TX_BASE_PTR0"},
	{Offset: 0x0234, Name: "TX_MAX_CNT0"},
	{Offset: 0x0238, Name: "TX_CTX_IDX0"},
	{Offset: 0x023c, Name: "TX_DTX_IDX0"},
	{Offset: 0x0290, Name: "RX_BASE_PTR"},
	{Offset: 0x0294, Name: "RX_MAX_CNT"},
	{Offset: 0x0298, Name: "RX_CALC_IDX"},
	{Offset: 0x029c, Name: "FS_DRX_IDX"},
	{Offset: 0x02a0, Name: "USB_DMA_CFG", Fields: []Field{
		{31, 31, "TX_BUSY"},
		{30, 30, "RX_BUSY"},
		{29, 24, "EPOUT_VLD"},
		{23, 23, "UDMA_TX_EN"},
		{22, 22, "UDMA_RX_EN"},
		{21, 21, "RX_AGG_EN"},
		{20, 20, "TXOP_HALT"},
		{19, 19, "TX_CLEAR"},
		{18, 17, "Reserved"},
		{16, 16, "PHY_WD_EN"},
		{15, 15, "PHY_MAN_RST"},
		{14, 8, "RX_AGG_LMT"},
		{7, 0, "RX_AGG_TO"},
	}},
	{Offset: 0x02a4, Name: "US_CYC_CNT", Fields: []Field{
		{31, 25, "Reserved"},
		{24, 24, "TEST_EN"},
		{23, 16, "TEST_SEL"},
		{15, 9, "Reserved"},
		{8, 8, "BT_MODE_EN"},
		{7, 0, "US_CYC_CNT"},
	}},
	{Offset: 0x0400, Name: "SYS_CTRL", Fields: []Field{
		{31, 17, "Reserved"},
		{16, 16, "HST_PM_SEL"},
		{15, 15, "Reserved"},
		{14, 14, "CAP_MODE"},
		{13, 13, "PME_OEN"},
		{12, 12, "CLKSELECT"},
		{11, 11, "PBF_CLKEN"},
		{10, 10, "MAC_CLKEN"},
		{9, 9, "DMA_CLKEN"},
		{8, 8, "Reserved"},
		{7, 7, "MCU_READY"},
		{6, 5, "Reseved"},
		{4, 4, "ASY_RESET"},
		{3, 3, "PBF_RESET"},
		{2, 2, "MAC_RESET"},
		{1, 1, "DMA_RESET"},
		{0, 0, "MCU_RESET"},
	}},
	{Offset: 0x0404, Name: "HOST_CMD", Fields: []Field{
		{31, 0, "HOST_CMD"},
	}},
	{Offset: 0x0408, Name: "PBF_CFG", Fields: []Field{
		{31, 24, "Reserved"},
		{23, 21, "TX1Q_NUM"},
		{20, 16, "TX2Q_NUM"},
		{15, 15, "NULL0_MODE"},
		{14, 14, "NULL1_MODE"},
		{13, 13, "RX_DROP_MODE"},
		{12, 12, "TX0Q_MODE"},
		{11, 11, "TX1Q_MODE"},
		{10, 10, "TX2Q_MODE"},
		{9, 9, "RX0Q_MODE"},
		{8, 8, "HCCA_MODE"},
		{7, 5, "Reserved"},
		{4, 4, "TX0Q_EN"},
		{3, 3, "TX1Q_EN"},
		{2, 2, "TX2Q_EN"},
		{1, 1, "RX0Q_EN"},
		{0, 0, "Reserved"},
	}},
	{Offset: 0x040c, Name: "MAX_PCNT"},
	{Offset: 0x0410, Name: "BUF_CTRL"},
	{Offset: 0x0414, Name: "MCU_INT_STA"},
	{Offset: 0x0418, Name: "MCU_INT_ENA"},
	{Offset: 0x041c, Name: "TX0Q_IO"},
	{Offset: 0x0420, Name: "TX1Q_IO"},
	{Offset: 0x0424, Name: "TX2Q_IO"},
	{Offset: 0x0428, Name: "RX0Q_IO"},
	{Offset: 0x042c, Name: "BCN_OFFSET0", Fields: []Field{
		{31, 24, "BCN3_OFFSET"},
		{23, 16, "BCN2_OFFSET"},
		{15, 8, "BCN1_OFFSET"},
		{7, 0, "BCN0_OFFSET"},
	}},
	{Offset: 0x0430, Name: "BCN_OFFSET1", Fields: []Field{
		{31, 24, "BCN7_OFFSET"},
		{23, 16, "BCN6_OFFSET"},
		{15, 8, "BCN5_OFFSET"},
		{7, 0, "BCN4_OFFSET"},
	}},
	{Offset: 0x0434, Name: "TXRXQ_STA", Fields: []Field{
		{31, 24, "RX0Q_STA"},
		{23, 16, "TX2Q_STA"},
		{15, 8, "TX1Q_STA"},
		{7, 0, "TX0Q_STA"},
	}},
	{Offset: 0x0438, Name: "TXRXQ_PCNT", Fields: []Field{
		{31, 24, "RX0Q_PCNT"},
		{23, 16, "TX2Q_PCNT"},
		{15, 8, "TX1Q_PCNT"},
		{7, 0, "TX0Q_PCNT"},
	}},
	{Offset: 0x043c, Name: "PBF_DBG"},
	{Offset: 0x0440, Name: "CAP_CTRL"},
	{Offset: 0x0500, Name: "RF_CSR_CFG", Fields: []Field{
		{31, 18, "Reserved"},
		{17, 17, "BUSY"},
		{16, 16, "WRITE"},
		{15, 14, "Reserved"},
		{13, 8, "REGNUM"},
		{7, 0, "DATA"},
	}},
	{Offset: 0x0580, Name: "EFUSE_CTRL"},
	{Offset: 0x0590, Name: "EFUSE_DATA0"},
	{Offset: 0x0594, Name: "EFUSE_DATA1"},
	{Offset: 0x0598, Name: "EFUSE_DATA2"},
	{Offset: 0x059c, Name: "EFUSE_DATA3"},
	{Offset: 0x05d4, Name: "LDO_CFG0"},
	{Offset: 0x05dc, Name: "GPIO_SWITCH"},
	{Offset: 0x1000, Name: "ASIC_VER_ID", Fields: []Field{
		{31, 16, "VER_ID"},
		{15, 0, "REV_ID"},
	}},
	{Offset: 0x1004, Name: "MAC_SYS_CTRL", Fields: []Field{
		{31, 8, "Reserved"},
		{7, 7, "RX_TS_EN"},
		{6, 6, "WLAN_HALT_EN"},
		{5, 5, "PBF_LOOP_EN"},
		{4, 4, "CONT_TX_TEST"},
		{3, 3, "MAC_RX_EN"},
		{2, 2, "MAC_TX_EN"},
		{1, 1, "BBP_HRST"},
		{0, 0, "MAC_SRST"},
	}},
	{Offset: 0x1008, Name: "MAC_ADDR_DW0", Fields: []Field{
		{31, 24, "MAC_ADDR_3"},
		{23, 16, "MAC_ADDR_2"},
		{15, 8, "MAC_ADDR_1"},
		{7, 0, "MAC_ADDR_0"},
	}},
	{Offset: 0x100c, Name: "MAC_ADDR_DW1", Fields: []Field{
		{31, 16, "Reserved"},
		{15, 8, "MAC_ADDR_5"},
		{7, 0, "MAC_ADDR_4"},
	}},
	{Offset: 0x1010, Name: "MAC_BSSID_DW0", Fields: []Field{
		{31, 24, "BSSID_3"},
		{23, 16, "BSSID_2"},
		{15, 8, "BSSID_1"},
		{7, 0, "BSSID_0"},
	}},
	{Offset: 0x1014, Name: "MAC_BSSID_DW1", Fields: []Field{
		{31, 21, "Reserved"},
		{20, 18, "MULTI_BCN_NUM"},
		{17, 16, "MULTI_BSSID_MODE"},
		{15, 8, "BSSID_5"},
		{7, 0, "BSSID_4"},
	}},
	{Offset: 0x1018, Name: "MAX_LEN_CFG", Fields: []Field{
		{31, 20, "Reserved"},
		{19, 16, "MIN_MPDU_LEN"},
		{15, 14, "Reserved"},
		{13, 12, "MAX_PSDU_LEN"},
		{11, 0, "MAX_MPDU_LEN"},
	}},
	{Offset: 0x101c, Name: "BBP_CSR_CFG", Fields: []Field{
		{31, 20, "Reserved"},
		{19, 19, "BBP_RW_MODE"},
		{18, 18, "BBP_PAR_DUR"},
		{17, 17, "BBP_CSR_KICK"},
		{16, 16, "BBP_CSR_RW"},
		{15, 8, "BBP_ADDR"},
		{7, 0, "BBP_DATA"},
	}},
	{Offset: 0x1020, Name: "RF_CSR_CFG0", Fields: []Field{
		{31, 31, "RF_REG_CTRL"},
		{30, 30, "RF_LE_SEL"},
		{29, 29, "RF_LE_STBY"},
		{28, 24, "RF_REG_WIDTH"},
		{23, 0, "RF_REG_0"},
	}},
	{Offset: 0x1024, Name: "RF_CSR_CFG1", Fields: []Field{
		{31, 25, "Reserved"},
		{24, 24, "RF_DUR"},
		{23, 0, "RF_REG_1"},
	}},
	{Offset: 0x1028, Name: "RF_CSR_CFG2", Fields: []Field{
		{31, 24, "Reserved"},
		{23, 0, "RF_REG_2"},
	}},
	{Offset: 0x102c, Name: "LED_CFG", Fields: []Field{
		{31, 31, "Reserved"},
		{30, 30, "LED_POL"},
		{29, 28, "Y_LED_MODE"},
		{27, 26, "G_LED_MODE"},
		{25, 24, "R_LED_MODE"},
		{23, 22, "Reserved"},
		{21, 16, "SLOW_BLK_TIME"},
		{15, 8, "LED_OFF_TIME"},
		{7, 0, "LED_ON_TIME"},
	}},
	{Offset: 0x1100, Name: "XIFS_TIME_CFG", Fields: []Field{
		{31, 30, "Reserved"},
		{29, 29, "BB_RXEND_EN"},
		{28, 20, "EIFS_TIME"},
		{19, 16, "OFDM_XIFS_TIME"},
		{15, 8, "OFDM_SIFS_TIME"},
		{7, 0, "CCK_SIFS_TIME"},
	}},
	{Offset: 0x1104, Name: "BKOFF_SLOT_CFG", Fields: []Field{
		{31, 12, "Reserved"},
		{11, 8, "CC_DELAY_TIME"},
		{7, 0, "SLOT_TIME"},
	}},
	{Offset: 0x1108, Name: "NAV_TIME_CFG", Fields: []Field{
		{31, 31, "NAV_UPD"},
		{30, 16, "NAV_UPD_VAL"},
		{15, 15, "NAV_CLR_EN"},
		{14, 0, "NAV_TIMER"},
	}},
	{Offset: 0x110c, Name: "CH_TIME_CFG", Fields: []Field{
		{31, 5, "Reserved"},
		{4, 4, "EIFS_AS_CH_BUSY"},
		{3, 3, "NAV_AS_CH_BUSY"},
		{2, 2, "RX_AS_CH_BYSY"},
		{1, 1, "TX_AS_CH_BUSY"},
		{0, 0, "CH_STA_TIMER_EN"},
	}},
	{Offset: 0x1110, Name: "PBF_LIFE_TIMER", Fields: []Field{
		{31, 0, "PBF_LIFE_TIMER"},
	}},
	{Offset: 0x1114, Name: "BCN_TIME_CFG", Fields: []Field{
		{31, 24, "TSF_INS_COMP"},
		{23, 21, "Reserved"},
		{20, 20, "BCN_TX_EN"},
		{19, 19, "TBTT_TIMER_EN"},
		{18, 17, "TSF_SYNC_MODE"},
		{16, 16, "TSF_TIMER_EN"},
		{15, 0, "BCN_INTVAL"},
	}},
	{Offset: 0x1118, Name: "TSF_SYNC_CFG", Fields: []Field{
		{31, 24, "Reserved"},
		{23, 20, "BCN_CWMIN"},
		{19, 16, "BCN_AIFSN"},
		{15, 8, "BCN_EXP_WIN"},
		{7, 0, "TBTT_ADJUST"},
	}},
	{Offset: 0x111c, Name: "TSF_TIMER_DW0", Fields: []Field{
		{31, 0, "TSF_TIMER_DW0"},
	}},
	{Offset: 0x1120, Name: "TSF_TIMER_DW1", Fields: []Field{
		{31, 0, "TSF_TIMER_DW1"},
	}},
	{Offset: 0x1124, Name: "TBTT_TIMER", Fields: []Field{
		{31, 17, "Reserved"},
		{16, 0, "TBTT_TIMER"},
	}},
	{Offset: 0x1128, Name: "INT_TIMER_CFG"},
	{Offset: 0x112c, Name: "INT_TIMER_EN"},
	{Offset: 0x1130, Name: "CH_IDLE_STA"},
	{Offset: 0x1200, Name: "MAC_STATUS_REG"},
	{Offset: 0x1204, Name: "PWR_PIN_CFG"},
	{Offset: 0x1208, Name: "AUTO_WAKEUP_CFG", Fields: []Field{
		{31, 16, "Reserved"},
		{15, 15, "AUTO_WAKEUP_EN"},
		{14, 8, "SLEEP_TBTT_NUM"},
		{7, 0, "WAKEUP_LEAD_TIME"},
	}},
	{Offset: 0x1300, Name: "EDCA_AC0_CFG"},
	{Offset: 0x1304, Name: "EDCA_AC1_CFG"},
	{Offset: 0x1308, Name: "EDCA_AC2_CFG"},
	{Offset: 0x1310, Name: "EDCA_TID_AC_MAP"},
	{Offset: 0x1314, Name: "TX_PWR_CFG_0", Fields: []Field{
		{31, 24, "TX_PWR_OFDM_12"},
		{23, 16, "TX_PWR_OFDM_6"},
		{15, 8, "TX_PWR_CCK_5"},
		{7, 0, "TX_PWR_CCK_1"},
	}},
	{Offset: 0x1318, Name: "TX_PWR_CFG_1", Fields: []Field{
		{31, 24, "TX_PWR_MCS_2"},
		{23, 16, "TX_PWR_MCS_0"},
		{15, 8, "TX_PWR_OFDM_48"},
		{7, 0, "TX_PWR_OFDM_24"},
	}},
	{Offset: 0x131c, Name: "TX_PWR_CFG_2", Fields: []Field{
		{31, 24, "TX_PWR_MCS_10"},
		{23, 16, "TX_PWR_MCS_8"},
		{15, 8, "TX_PWR_MCS_6"},
		{7, 0, "TX_PWR_MCS_4"},
	}},
	{Offset: 0x1320, Name: "TX_PWR_CFG_3", Fields: []Field{
		{31, 24, "Reserved"},
		{23, 16, "Reserved"},
		{15, 8, "TX_PWR_MCS_14"},
		{7, 0, "TX_PWR_MCS_12"},
	}},
	{Offset: 0x1324, Name: "TX_PWR_CFG_4", Fields: []Field{
		{31, 24, "Reserved"},
		{23, 16, "Reserved"},
		{15, 8, "Reserved"},
		{7, 0, "Reserved"},
	}},
	{Offset: 0x1328, Name: "TX_PIN_CFG", Fields: []Field{
		{31, 20, "Reserved"},
		{19, 19, "TRSW_POL"},
		{18, 18, "TRSW_EN"},
		{17, 17, "RFTR_POL"},
		{16, 16, "RFTR_EN"},
		{15, 15, "LNA_PE_G1_POL"},
		{14, 14, "LNA_PE_A1_POL"},
		{13, 13, "LNA_PE_G0_POL"},
		{12, 12, "LNA_PE_A0_POL"},
		{11, 11, "LNA_PE_G1_EN"},
		{10, 10, "LNA_PE_A1_EN"},
		{9, 9, "LNA_PE_G0_EN"},
		{8, 8, "LNA_PE_A0_EN"},
		{7, 7, "PA_PE_G1_POL"},
		{6, 6, "PA_PE_A1_POL"},
		{5, 5, "PA_PE_G0_POL"},
		{4, 4, "PA_PE_A0_POL"},
		{3, 3, "PA_PE_G1_EN"},
		{2, 2, "PA_PE_A1_EN"},
		{1, 1, "PA_PE_G0_EN"},
		{0, 0, "PA_PE_A0_EN"},
	}},
	{Offset: 0x132c, Name: "TX_BAND_CFG", Fields: []Field{
		{31, 3, "Reserved"},
		{2, 2, "5G_BAND_SEL_N"},
		{1, 1, "5G_CAND_SEL_P"},
		{0, 0, "TX_BAND_SEL"},
	}},
	{Offset: 0x1330, Name: "TX_SW_CFG0"},
	{Offset: 0x1334, Name: "TX_SW_CFG1"},
	{Offset: 0x1338, Name: "TX_SW_CFG2"},
	{Offset: 0x133c, Name: "TXOP_THRES_CFG"},
	{Offset: 0x1344, Name: "TX_RTS_CFG"},
	{Offset: 0x1348, Name: "TX_TIMEOUT_CFG"},
	{Offset: 0x134c, Name: "TX_RTY_CFG"},
	{Offset: 0x1354, Name: "HT_FBK_CFG0"},
	{Offset: 0x1358, Name: "HT_FBK_CFG1"},
	{Offset: 0x135c, Name: "LG_FBK_CFG0"},
	{Offset: 0x1360, Name: "LG_FBK_CFG1"},
	{Offset: 0x1364, Name: "CCK_PROT_CFG"},
	{Offset: 0x1368, Name: "OFDM_PROT_CFG"},
	{Offset: 0x136c, Name: "MM20_PROT_CFG"},
	{Offset: 0x1370, Name: "MM40_PROT_CFG"},
	{Offset: 0x1374, Name: "GF20_PROT_CFG"},
	{Offset: 0x1378, Name: "GF40_PROT_CFG"},
	{Offset: 0x137c, Name: "EXP_CTS_TIME"},
	{Offset: 0x1380, Name: "EXP_ACK_TIME"},
	{Offset: 0x1400, Name: "RX_FILTR_CFG", Fields: []Field{
		{31, 17, "Reserved"},
		{16, 16, "DROP_CTRL_RSV"},
		{15, 15, "DROP_BAR"},
		{14, 14, "DROP_BA"},
		{13, 13, "DROP_PSPOLL"},
		{12, 12, "DROP_RTS"},
		{11, 11, "DROP_CTS"},
		{10, 10, "DROP_ACK"},
		{9, 9, "DROP_CFEND"},
		{8, 8, "DROP_CFACK"},
		{7, 7, "DROP_DUPL"},
		{6, 6, "DROP_BC"},
		{5, 5, "DROP_MC"},
		{4, 4, "DROP_VER_ERR"},
		{3, 3, "DROP_NOT_MYBSS"},
		{2, 2, "DROP_UC_NOME"},
		{1, 1, "DROP_PHY_ERR"},
		{0, 0, "DROP_CRC_ERR"},
	}},
	{Offset: 0x1404, Name: "AUTO_RSP_CFG", Fields: []Field{
		{31, 8, "Reserved"},
		{7, 7, "CTRL_PWR_BIT"},
		{6, 6, "BAC_ACK_POLICY"},
		{5, 5, "Reserved"},
		{4, 4, "CCK_SHORT_EN"},
		{3, 3, "CTS_40M_REF"},
		{2, 2, "CTS_40M_MODE"},
		{1, 1, "BAC_ACKPOLICY_EN"},
		{0, 0, "AUTO_RSP_EN"},
	}},
	{Offset: 0x1408, Name: "LEGACY_BASIC_RATE", Fields: []Field{
		{31, 12, "Reserved"},
		{11, 0, "LEGACY_BASIC_RATE"},
	}},
	{Offset: 0x140c, Name: "HT_BASIC_RATE", Fields: []Field{
		{31, 0, "Reserved"},
	}},
	{Offset: 0x1410, Name: "HT_CTRL_CFG"},
	{Offset: 0x1414, Name: "SIFS_COST_CFG"},
	{Offset: 0x1418, Name: "RX_PARSER_CFG"},
	{Offset: 0x1500, Name: "TX_SEC_CNT0"},
	{Offset: 0x1504, Name: "RX_SEC_CNT0"},
	{Offset: 0x1508, Name: "CCMP_FC_MUTE"},
	{Offset: 0x1600, Name: "TXOP_HLDR_ADDR0"},
	{Offset: 0x1604, Name: "TXOP_HLDR_ADDR1"},
	{Offset: 0x1608, Name: "TXOP_HLDR_ET"},
	{Offset: 0x160c, Name: "QOS_CFPOLL_RA_DW0"},
	{Offset: 0x1610, Name: "QOS_CFPOLL_A1_DW1"},
	{Offset: 0x1614, Name: "QOS_CFPOLL_QC"},
	{Offset: 0x1700, Name: "RX_STA_CNT0", Fields: []Field{
		{31, 16, "PHY_ERRCNT"},
		{15, 0, "CRC_ERRCNT"},
	}},
	{Offset: 0x1704, Name: "RX_STA_CNT1", Fields: []Field{
		{31, 16, "PLPC_ERRCNT"},
		{15, 0, "CCA_ERRCNT"},
	}},
	{Offset: 0x1708, Name: "RX_STA_CNT2", Fields: []Field{
		{31, 16, "RX_OVFL_CNT"},
		{15, 0, "RX_DUPL_CNT"},
	}},
	{Offset: 0x170c, Name: "TX_STA_CNT0", Fields: []Field{
		{31, 16, "TX_BCN_CNT"},
		{15, 0, "TX_FAIL_CNT"},
	}},
	{Offset: 0x1710, Name: "TX_STA_CNT1", Fields: []Field{
		{31, 16, "TX_RTY_CNT"},
		{15, 0, "TX_SUCC_CNT"},
	}},
	{Offset: 0x1714, Name: "TX_STA_CNT2", Fields: []Field{
		{31, 16, "TX_UDFL_CNT"},
		{15, 0, "TX_ZERO_CNT"},
	}},
	{Offset: 0x1718, Name: "TX_STAT_FIFO", Fields: []Field{
		{31, 16, "TXQ_RATE"},
		{15, 8, "TXQ_WCID"},
		{7, 7, "TXQ_ACKREQ"},
		{6, 6, "TXQ_AGG"},
		{5, 5, "TXQ_OK"},
		{4, 1, "TXQ_PID"},
		{0, 0, "TXQ_VLD"},
	}},
	{Offset: 0x171c, Name: "TX_NAG_AGG_CNT", Fields: []Field{
		{31, 16, "TX_AGG_CNT"},
		{15, 0, "TX_NAG_CNT"},
	}},
	{Offset: 0x1720, Name: "TX_AGG_CNT0", Fields: []Field{
		{31, 16, "TX_AGG_2_CNT"},
		{15, 0, "TX_AGG_1_CNT"},
	}},
	{Offset: 0x1724, Name: "TX_AGG_CNT1", Fields: []Field{
		{31, 16, "TX_AGG_4_CNT"},
		{15, 0, "TX_AGG_3_CNT"},
	}},
	{Offset: 0x1728, Name: "TX_AGG_CNT2", Fields: []Field{
		{31, 16, "TX_AGG_6_CNT"},
		{15, 0, "TX_AGG_5_CNT"},
	}},
	{Offset: 0x172c, Name: "TX_AGG_CNT3", Fields: []Field{
		{31, 16, "TX_AGG_8_CNT"},
		{15, 0, "TX_AGG_7_CNT"},
	}},
	{Offset: 0x1730, Name: "TX_AGG_CNT4", Fields: []Field{
		{31, 16, "TX_AGG_10_CNT"},
		{15, 0, "TX_AGG_9_CNT"},
	}},
	{Offset: 0x1734, Name: "TX_AGG_CNT5", Fields: []Field{
		{31, 16, "TX_AGG_12_CNT"},
		{15, 0, "TX_AGG_11_CNT"},
	}},
	{Offset: 0x1738, Name: "TX_AGG_CNT6", Fields: []Field{
		{31, 16, "TX_AGG_14_CNT"},
		{15, 0, "TX_AGG_13_CNT"},
	}},
	{Offset: 0x173c, Name: "TX_AGG_CNT7", Fields: []Field{
		{31, 16, "TX_AGG_16_CNT"},
		{15, 0, "TX_AGG_15_CNT"},
	}},
	{Offset: 0x1740, Name: "MPDU_DENSITY_CNT"},
}

// inBandDescriptors are the descriptor words carried in bulk transfers.
var inBandDescriptors = []Register{
	{Name: "TXINFO", Fields: []Field{
		{31, 31, "USB_DMA_TX_BURST"},
		{30, 30, "USB_DMA_NEXT_VALID"},
		{29, 28, "Reserved"},
		{27, 27, "SW_USE_LAST_ROUND"},
		{26, 25, "QSEL"},
		{24, 24, "WIV"},
		{23, 16, "Reserved"},
		{15, 0, "TX_PKT_LEN"},
	}},
	{Name: "TXWI_W0", Fields: []Field{
		{31, 30, "PHYMODE"},
		{29, 28, "Reserved"},
		{27, 27, "IFS"},
		{26, 25, "STBC"},
		{24, 24, "SHORT_GI"},
		{23, 23, "BW"},
		{22, 16, "MCS"},
		{15, 10, "Reserved"},
		{9, 8, "TXOP"},
		{7, 5, "MPDU_DENSITY"},
		{4, 4, "AMPDU"},
		{3, 3, "TS"},
		{2, 2, "CFACK"},
		{1, 1, "MIMO_PS"},
		{0, 0, "FRAG"},
	}},
	{Name: "TXWI_W1", Fields: []Field{
		{31, 28, "PACKET_ID"},
		{27, 16, "MPDU_TOTAL_BYTE_COUNT"},
		{15, 8, "WCID"},
		{7, 2, "BA_WIN_SIZE"},
		{1, 1, "NSEQ"},
		{0, 0, "ACK"},
	}},
	{Name: "RXINFO", Fields: []Field{
		{31, 16, "Reserved"},
		{15, 0, "RX_PKT_LEN"},
	}},
	{Name: "RXWI_W0", Fields: []Field{
		{31, 28, "TID"},
		{27, 16, "MPDU_TOTAL_BYTE_COUNT"},
		{15, 13, "UDF"},
		{12, 10, "BSSID"},
		{9, 8, "KEY_INDEX"},
		{7, 0, "WCID"},
	}},
	{Name: "RXWI_W1", Fields: []Field{
		{31, 30, "PHYMODE"},
		{29, 27, "Reserved"},
		{26, 25, "STBC"},
		{24, 24, "SHORT_GI"},
		{23, 23, "BW"},
		{22, 16, "MCS"},
		{15, 3, "SEQUENCE"},
		{2, 0, "FRAG"},
	}},
	{Name: "RXWI_W2", Fields: []Field{
		{31, 24, "Reserved"},
		{23, 16, "RSSI2"},
		{15, 8, "RSSI1"},
		{7, 0, "RSSI0"},
	}},
	{Name: "RXWI_W3", Fields: []Field{
		{31, 16, "Reserved"},
		{15, 8, "SNR0"},
		{7, 0, "SNR1"},
	}},
	{Name: "RXD", Fields: []Field{
		{31, 20, "PLCP_SIGNAL"},
		{19, 19, "LAST_AMPDU"},
		{18, 18, "CIPHER_ALG"},
		{17, 17, "PLCP_RSSI"},
		{16, 16, "DECRYPTED"},
		{15, 15, "AMPDU"},
		{14, 14, "L2PAD"},
		{13, 13, "RSSI"},
		{12, 12, "HTC"},
		{11, 11, "AMSDU"},
		{10, 9, "CIPHER_ERROR"},
		{8, 8, "CRC_ERROR"},
		{7, 7, "MY_BSS"},
		{6, 6, "BROADCAST"},
		{5, 5, "MULTICAST"},
		{4, 4, "UNICAST_TO_ME"},
		{3, 3, "FRAG"},
		{2, 2, "NULLDATA"},
		{1, 1, "DATA"},
		{0, 0, "BA"},
	}},
}

// areas partitions the 16-bit vendor request index space.
var areas = []Area{
	{0x0000, 0x17ff, "MAC REGISTERS"},
	{0x1800, 0x1fff, "WCID search table"},
	{0x2000, 0x2fff, "Unknown 1"},
	{0x3000, 0x3fff, "Firmware"},
	{0x4000, 0x5fff, "Security table/CIS/Beacon/NULL frame"},
	{0x6000, 0x67ff, "IV/EIV table"},
	{0x6800, 0x6bff, "WCID attribute table"},
	{0x6c00, 0x6fff, "Shared Key Table"},
	{0x7000, 0x700f, "Shared Key Mode"},
	{0x7010, 0x701f, "Shared Memory MCU - host"},
	{0x7020, 0xffff, "Unknown 2"},
}
